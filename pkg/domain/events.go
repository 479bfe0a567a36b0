package domain

// StepEvent describes one executed transition.
type StepEvent struct {
	Step    int      `json:"step"` // 1-based
	Rule    Rule     `json:"rule"`
	Read    []string `json:"read"`
	Written []string `json:"written"`
	From    State    `json:"from"`
	To      State    `json:"to"`
}

// HaltEvent describes the end of a run.
type HaltEvent struct {
	Steps  int            `json:"steps"`
	Reason HaltReason     `json:"reason"`
	State  State          `json:"state"`
	Tapes  []TapeSnapshot `json:"tapes"`
}

// LifecycleHooks defines callbacks for machine observability.
// Hooks run synchronously on the machine's goroutine.
type LifecycleHooks struct {
	OnStep func(*StepEvent)
	OnHalt func(*HaltEvent)
}

// Merge combines hooks so that both h and other are invoked, h first.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStep: chain(h.OnStep, other.OnStep),
		OnHalt: chain(h.OnHalt, other.OnHalt),
	}
}

func chain[E any](a, b func(E)) func(E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e E) {
		a(e)
		b(e)
	}
}
