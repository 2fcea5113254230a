// Package guidance maps a free-text goal to recommended job configurations.
// It only matches keywords; it does not reason about the goal.
package guidance

import (
	"fmt"
	"strings"

	"github.com/JJBon/synth-data-service/internal/domain"
)

// Recommendation suggests one task type with advisory configuration fields.
// Suggested config is never validated; the caller may submit it as-is or edit
// it before creating a job.
type Recommendation struct {
	TaskType        domain.TaskType        `json:"task_type"`
	Description     string                 `json:"description"`
	SuggestedConfig map[string]interface{} `json:"suggested_config,omitempty"`
}

// Guidance is the classifier output: zero or more matched recommendations
// (or the single fallback) followed by fixed next-step guidance.
type Guidance struct {
	Recommendations []Recommendation `json:"recommendations"`
	NextSteps       []string         `json:"next_steps"`
}

// rule pairs keyword predicates with a recommendation template. Rules are
// evaluated in order and matching is non-exclusive.
type rule struct {
	keywords  []string
	recommend Recommendation
}

// Classifier holds the static rule table.
type Classifier struct {
	rules []rule
}

// NewClassifier builds the classifier with the default rule table.
func NewClassifier() *Classifier {
	return &Classifier{rules: defaultRules()}
}

func defaultRules() []rule {
	return []rule{
		{
			keywords: []string{"question", "q&a", "qa", "faq", "answer"},
			recommend: Recommendation{
				TaskType:    domain.TaskQuestionAnswering,
				Description: "Generate question/answer pairs with supporting context passages.",
				SuggestedConfig: map[string]interface{}{
					"domain":     "general knowledge",
					"difficulty": "medium",
				},
			},
		},
		{
			keywords: []string{"summar", "tl;dr", "abstract", "digest"},
			recommend: Recommendation{
				TaskType:    domain.TaskSummarization,
				Description: "Generate source documents paired with summaries.",
				SuggestedConfig: map[string]interface{}{
					"source_length": "medium",
					"style":         "concise",
				},
			},
		},
		{
			keywords: []string{"classif", "categor", "label", "sentiment"},
			recommend: Recommendation{
				TaskType:    domain.TaskClassification,
				Description: "Generate labeled text samples for classifier training.",
				SuggestedConfig: map[string]interface{}{
					"class_labels": []string{"positive", "negative", "neutral"},
				},
			},
		},
		{
			keywords: []string{"generat", "text", "write", "essay", "article", "story"},
			recommend: Recommendation{
				TaskType:    domain.TaskTextGeneration,
				Description: "Generate free-form text samples with style metadata.",
				SuggestedConfig: map[string]interface{}{
					"style":  "neutral",
					"length": "medium",
				},
			},
		},
	}
}

// Classify lower-cases the goal, collects every matching recommendation, and
// appends the fixed next-step guidance. When nothing matches it returns a
// single fallback recommendation enumerating the supported task types.
// Classify performs no mutation and cannot fail for any input.
func (c *Classifier) Classify(goal string) *Guidance {
	lowered := strings.ToLower(goal)

	var recs []Recommendation
	for _, r := range c.rules {
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				recs = append(recs, r.recommend)
				break
			}
		}
	}

	if len(recs) == 0 {
		recs = []Recommendation{fallbackRecommendation()}
	}

	return &Guidance{
		Recommendations: recs,
		NextSteps:       nextSteps(),
	}
}

func fallbackRecommendation() Recommendation {
	types := domain.KnownTaskTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return Recommendation{
		TaskType: domain.TaskOther,
		Description: fmt.Sprintf(
			"No specific task type matched your goal. Supported task types: %s. Pick one and describe your data needs.",
			strings.Join(names, ", ")),
		SuggestedConfig: map[string]interface{}{
			"task_types": names,
		},
	}
}

func nextSteps() []string {
	return []string{
		"Choose a task type for your dataset.",
		"Decide how many samples you need (default 100).",
		"Set task-specific configuration such as domain, style, or class labels.",
		"Create the job and poll its status until it completes.",
	}
}
