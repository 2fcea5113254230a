package guidance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JJBon/synth-data-service/internal/domain"
	"github.com/JJBon/synth-data-service/internal/guidance"
)

func taskTypes(g *guidance.Guidance) []domain.TaskType {
	types := make([]domain.TaskType, len(g.Recommendations))
	for i, rec := range g.Recommendations {
		types[i] = rec.TaskType
	}
	return types
}

func TestClassify_QuestionAnsweringGoal(t *testing.T) {
	c := guidance.NewClassifier()

	g := c.Classify("I need 200 Q&A pairs about Python")
	assert.Contains(t, taskTypes(g), domain.TaskQuestionAnswering)
}

func TestClassify_CaseInsensitive(t *testing.T) {
	c := guidance.NewClassifier()

	g := c.Classify("SUMMARIZE my support tickets")
	assert.Contains(t, taskTypes(g), domain.TaskSummarization)
}

func TestClassify_MultipleMatches(t *testing.T) {
	c := guidance.NewClassifier()

	// Matching is non-exclusive: classification and text_generation both fire
	g := c.Classify("generate labeled text for sentiment analysis")
	types := taskTypes(g)
	assert.Contains(t, types, domain.TaskClassification)
	assert.Contains(t, types, domain.TaskTextGeneration)
}

func TestClassify_NoMatchReturnsFallback(t *testing.T) {
	c := guidance.NewClassifier()

	g := c.Classify("zzz unrelated gibberish")
	require.Len(t, g.Recommendations, 1)
	assert.Equal(t, domain.TaskOther, g.Recommendations[0].TaskType)
	assert.Contains(t, g.Recommendations[0].SuggestedConfig, "task_types")
}

func TestClassify_EmptyGoal(t *testing.T) {
	c := guidance.NewClassifier()

	g := c.Classify("")
	require.Len(t, g.Recommendations, 1)
	assert.Equal(t, domain.TaskOther, g.Recommendations[0].TaskType)
}

func TestClassify_SuggestedConfig(t *testing.T) {
	c := guidance.NewClassifier()

	g := c.Classify("classify customer feedback")
	require.NotEmpty(t, g.Recommendations)

	var found bool
	for _, rec := range g.Recommendations {
		if rec.TaskType == domain.TaskClassification {
			found = true
			assert.Contains(t, rec.SuggestedConfig, "class_labels")
		}
	}
	assert.True(t, found)
}

func TestClassify_NextStepsAlwaysAppended(t *testing.T) {
	c := guidance.NewClassifier()

	matched := c.Classify("summarize these articles")
	unmatched := c.Classify("zzz unrelated gibberish")

	require.NotEmpty(t, matched.NextSteps)
	assert.Equal(t, matched.NextSteps, unmatched.NextSteps)
	assert.Len(t, matched.NextSteps, 4)
}
