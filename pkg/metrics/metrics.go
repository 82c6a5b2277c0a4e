// Package metrics exports wizard activity as Prometheus metrics.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const namespace = "formwizard"

// Label values.
const (
	DirectionForward  = "forward"
	DirectionBackward = "backward"
	OutcomeSucceeded  = "succeeded"
	OutcomeFailed     = "failed"
)

// Metrics implements wizard.Observer. One value may observe any number of
// sessions.
type Metrics struct {
	transitions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	submissions *prometheus.CounterVec
	duration    prometheus.Histogram
	sessions    prometheus.Gauge
}

var _ wizard.Observer = (*Metrics)(nil)

// New creates the collectors and registers them on reg. Collectors already
// registered by an earlier call are reused. A nil reg leaves the collectors
// unregistered.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "step_transitions_total",
				Help:      "Step changes by direction",
			},
			[]string{"direction"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_failures_total",
				Help:      "Field validation failures by field",
			},
			[]string{"field"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Finished submissions by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "submission_duration_seconds",
				Help:      "Time spent in the submission transport",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
		),
		sessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "sessions_active",
				Help:      "Wizard sessions currently held in memory",
			},
		),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.transitions, err = register(reg, m.transitions); err != nil {
		return nil, err
	}
	if m.failures, err = register(reg, m.failures); err != nil {
		return nil, err
	}
	if m.submissions, err = register(reg, m.submissions); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}
	if m.sessions, err = register(reg, m.sessions); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("metrics: register collector: %w", err)
	}
	return c, nil
}

// StepChanged implements wizard.Observer.
func (m *Metrics) StepChanged(from, to int) {
	direction := DirectionForward
	if to < from {
		direction = DirectionBackward
	}
	m.transitions.WithLabelValues(direction).Inc()
}

// ValidationFailed implements wizard.Observer.
func (m *Metrics) ValidationFailed(_ int, failures map[wizard.Field]string) {
	for field := range failures {
		m.failures.WithLabelValues(string(field)).Inc()
	}
}

// StatusChanged implements wizard.Observer.
func (m *Metrics) StatusChanged(wizard.Status, wizard.Status) {}

// SubmissionFinished implements wizard.Observer.
func (m *Metrics) SubmissionFinished(elapsed time.Duration, err error) {
	outcome := OutcomeSucceeded
	if err != nil {
		outcome = OutcomeFailed
	}
	m.submissions.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// SessionOpened increments the active session gauge.
func (m *Metrics) SessionOpened() { m.sessions.Inc() }

// SessionClosed decrements the active session gauge.
func (m *Metrics) SessionClosed() { m.sessions.Dec() }
