package domain

// TaskType is the category of synthetic data requested.
type TaskType string

const (
	TaskQuestionAnswering TaskType = "question_answering"
	TaskSummarization     TaskType = "summarization"
	TaskClassification    TaskType = "classification"
	TaskTextGeneration    TaskType = "text_generation"
	TaskOther             TaskType = "other"
)

// KnownTaskTypes lists the task types with a dedicated record shape, in the
// order they are advertised to callers.
func KnownTaskTypes() []TaskType {
	return []TaskType{
		TaskQuestionAnswering,
		TaskSummarization,
		TaskClassification,
		TaskTextGeneration,
	}
}
