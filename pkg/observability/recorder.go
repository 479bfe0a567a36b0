package observability

import (
	"sync"

	"github.com/aretw0/turing/pkg/domain"
)

// Recorder keeps the step events of a run, up to a limit.
type Recorder struct {
	mu      sync.Mutex
	limit   int
	events  []domain.StepEvent
	dropped int
	halt    *domain.HaltEvent
}

// NewRecorder creates a recorder keeping at most limit steps. A non-positive
// limit keeps everything.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

// Hooks returns lifecycle hooks that feed the recorder.
func (r *Recorder) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(e *domain.StepEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			if r.limit > 0 && len(r.events) >= r.limit {
				r.dropped++
				return
			}
			r.events = append(r.events, *e)
		},
		OnHalt: func(e *domain.HaltEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			halt := *e
			r.halt = &halt
		},
	}
}

// Steps returns the recorded steps and how many were dropped past the limit.
func (r *Recorder) Steps() ([]domain.StepEvent, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.StepEvent, len(r.events))
	copy(out, r.events)
	return out, r.dropped
}

// Halt returns the halt event, or nil while the run is in progress.
func (r *Recorder) Halt() *domain.HaltEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.halt
}
