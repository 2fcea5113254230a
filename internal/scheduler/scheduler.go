// Package scheduler advances jobs through their simulated lifecycle using
// delayed transitions, without blocking the creating caller.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/JJBon/synth-data-service/internal/domain"
	"github.com/JJBon/synth-data-service/internal/generator"
	"github.com/JJBon/synth-data-service/internal/logger"
	"github.com/JJBon/synth-data-service/internal/store"
)

// Delays holds the simulated backend latency for each lifecycle step. The
// delays are fixed and never derived from the requested sample count.
type Delays struct {
	Start    time.Duration // pending -> running (progress 25)
	Midpoint time.Duration // running, progress 75
	Complete time.Duration // running -> completed (progress 100)
}

// DefaultDelays returns the production delays.
func DefaultDelays() Delays {
	return Delays{
		Start:    2 * time.Second,
		Midpoint: 4 * time.Second,
		Complete: 6 * time.Second,
	}
}

// Scheduler arms one scheduled task per job: three timers that fire the
// lifecycle transitions. Each transition re-checks job status through
// store.Advance, so a cancellation that lands first turns every later timer
// into a no-op.
type Scheduler struct {
	store   *store.MemoryStore
	gen     *generator.Generator
	delays  Delays
	mu      sync.Mutex
	pending map[string][]*time.Timer
}

// New creates a Scheduler over the given store and generator.
func New(st *store.MemoryStore, gen *generator.Generator, delays Delays) *Scheduler {
	return &Scheduler{
		store:   st,
		gen:     gen,
		delays:  delays,
		pending: make(map[string][]*time.Timer),
	}
}

// Schedule arms the delayed transitions for a freshly created job and returns
// immediately. The completion transition invokes the generator and attaches
// its output atomically with the status change.
func (s *Scheduler) Schedule(job *domain.Job) {
	id := job.ID
	taskType := job.TaskType
	numSamples := job.NumSamples
	cfg := job.Config

	timers := []*time.Timer{
		time.AfterFunc(s.delays.Start, func() {
			s.advance(id, domain.JobStatusRunning, 25, nil)
		}),
		time.AfterFunc(s.delays.Midpoint, func() {
			s.advance(id, domain.JobStatusRunning, 75, nil)
		}),
		time.AfterFunc(s.delays.Complete, func() {
			results := s.gen.Generate(taskType, numSamples, cfg)
			s.advance(id, domain.JobStatusCompleted, 100, results)
			s.forget(id)
		}),
	}

	s.mu.Lock()
	s.pending[id] = timers
	s.mu.Unlock()
}

// Cancel stops any timers still pending for the job. Transitions already in
// flight are not interrupted; they no-op against the terminal status instead.
func (s *Scheduler) Cancel(jobID string) {
	s.mu.Lock()
	timers := s.pending[jobID]
	delete(s.pending, jobID)
	s.mu.Unlock()

	for _, t := range timers {
		t.Stop()
	}
}

// Stop cancels all pending timers. Used on shutdown.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	all := s.pending
	s.pending = make(map[string][]*time.Timer)
	s.mu.Unlock()

	for _, timers := range all {
		for _, t := range timers {
			t.Stop()
		}
	}
}

func (s *Scheduler) advance(jobID string, status domain.JobStatus, progress int, results []domain.Record) {
	ctx := logger.SetComponent(logger.SetJobID(context.Background(), jobID), "scheduler")

	job, ok := s.store.Advance(jobID, status, progress, results)
	if !ok {
		logger.CtxDebug(ctx, "Skipping transition to %s: job already terminal", status)
		return
	}

	entry := logger.With(logger.Fields{
		logger.FieldStatus:   string(job.Status),
		logger.FieldProgress: job.Progress,
	})
	if status == domain.JobStatusCompleted {
		entry = entry.WithCount(len(results))
	}
	entry.Info(ctx, "Job transitioned to %s", job.Status)
}

func (s *Scheduler) forget(jobID string) {
	s.mu.Lock()
	delete(s.pending, jobID)
	s.mu.Unlock()
}
