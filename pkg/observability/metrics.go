package observability

import (
	"github.com/aretw0/turing/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports run statistics to Prometheus.
type Metrics struct {
	steps    prometheus.Counter
	runs     *prometheus.CounterVec
	runSteps prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "turing_steps_total",
			Help: "Total number of executed transitions",
		}),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_runs_total",
				Help: "Total number of halted runs by halt reason",
			},
			[]string{"reason"},
		),
		runSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "turing_run_steps",
			Help:    "Number of transitions executed per run",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}

	for _, c := range []prometheus.Collector{m.steps, m.runs, m.runSteps} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(*domain.StepEvent) {
			m.steps.Inc()
		},
		OnHalt: func(e *domain.HaltEvent) {
			m.runs.WithLabelValues(string(e.Reason)).Inc()
			m.runSteps.Observe(float64(e.Steps))
		},
	}
}
