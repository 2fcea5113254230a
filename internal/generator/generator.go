// Package generator synthesizes placeholder sample records per task type.
// Records are structurally valid stand-ins for real generated data; only the
// classification confidence is randomized.
package generator

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/JJBon/synth-data-service/internal/domain"
)

// PreviewLimit caps how many records a job attaches regardless of how many
// samples were requested. Intentional preview-size limit, not a defect.
const PreviewLimit = 10

// Generator produces sample records. Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Generator seeded from the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed creates a Generator with a fixed seed, for deterministic tests.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns min(numSamples, PreviewLimit) records shaped for the given
// task type. Fields come from cfg where present, otherwise from documented
// defaults. An unrecognized task type degrades to a generic record shape
// rather than erroring; Generate cannot fail.
func (g *Generator) Generate(taskType domain.TaskType, numSamples int, cfg map[string]interface{}) []domain.Record {
	count := numSamples
	if count > PreviewLimit {
		count = PreviewLimit
	}
	if count < 0 {
		count = 0
	}

	records := make([]domain.Record, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, g.record(taskType, i, cfg))
	}
	return records
}

func (g *Generator) record(taskType domain.TaskType, index int, cfg map[string]interface{}) domain.Record {
	id := fmt.Sprintf("sample-%d", index+1)

	switch taskType {
	case domain.TaskQuestionAnswering:
		topic := configString(cfg, "domain", "general knowledge")
		difficulty := configString(cfg, "difficulty", "medium")
		return domain.Record{
			"id":       id,
			"question": fmt.Sprintf("Sample %s question %d about %s?", difficulty, index+1, topic),
			"answer":   fmt.Sprintf("Sample answer %d covering %s.", index+1, topic),
			"context":  fmt.Sprintf("Reference passage %d for %s.", index+1, topic),
		}

	case domain.TaskSummarization:
		sourceLength := configString(cfg, "source_length", "medium")
		style := configString(cfg, "style", "concise")
		return domain.Record{
			"id":          id,
			"source_text": fmt.Sprintf("Sample %s-length source document %d to be summarized.", sourceLength, index+1),
			"summary":     fmt.Sprintf("Sample %s summary of document %d.", style, index+1),
		}

	case domain.TaskClassification:
		labels := configStrings(cfg, "class_labels", []string{"category_a", "category_b", "category_c"})
		return domain.Record{
			"id":         id,
			"text":       fmt.Sprintf("Sample text %d to classify.", index+1),
			"label":      labels[index%len(labels)],
			"confidence": g.confidence(),
		}

	case domain.TaskTextGeneration:
		style := configString(cfg, "style", "neutral")
		length := configString(cfg, "length", "medium")
		return domain.Record{
			"id":   id,
			"text": fmt.Sprintf("Sample %s generated text %d (%s length).", style, index+1, length),
			"metadata": map[string]interface{}{
				"style":  style,
				"length": length,
				"topics": cfg["topics"],
			},
		}

	default:
		return domain.Record{
			"id":   id,
			"data": fmt.Sprintf("Sample record %d.", index+1),
		}
	}
}

// confidence draws a value in [0.85, 1.0).
func (g *Generator) confidence() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return 0.85 + g.rng.Float64()*0.15
}

// configString reads a string field from the job config, falling back to def.
func configString(cfg map[string]interface{}, key, def string) string {
	if cfg == nil {
		return def
	}
	if v, ok := cfg[key].(string); ok && v != "" {
		return v
	}
	return def
}

// configStrings reads a string list from the job config. JSON-decoded configs
// carry []interface{}, so both that and []string are accepted; anything else
// falls back to def.
func configStrings(cfg map[string]interface{}, key string, def []string) []string {
	if cfg == nil {
		return def
	}
	switch v := cfg[key].(type) {
	case []string:
		if len(v) > 0 {
			return v
		}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return def
			}
			out = append(out, s)
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}
