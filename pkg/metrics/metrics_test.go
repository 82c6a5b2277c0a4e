package metrics

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type failingTransport struct{}

func (failingTransport) Submit(context.Context, wizard.FormRecord) error {
	return errors.New("offline")
}

func TestMetricsObserveWizard(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m, err := New(reg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	w := wizard.New(wizard.WithObserver(m), wizard.WithTransport(failingTransport{}))
	w.Advance()

	if got := testutil.ToFloat64(m.failures.WithLabelValues("firstName")); got != 1 {
		t.Fatalf("firstName failures = %v", got)
	}
	if got := testutil.CollectAndCount(m.failures); got != 5 {
		t.Fatalf("expected one series per step 1 field, got %d", got)
	}

	m.StepChanged(1, 2)
	m.StepChanged(2, 3)
	m.StepChanged(3, 2)
	if got := testutil.ToFloat64(m.transitions.WithLabelValues(DirectionForward)); got != 2 {
		t.Fatalf("forward transitions = %v", got)
	}
	if got := testutil.ToFloat64(m.transitions.WithLabelValues(DirectionBackward)); got != 1 {
		t.Fatalf("backward transitions = %v", got)
	}
}

func TestMetricsSubmissions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	m.SubmissionFinished(0, nil)
	m.SubmissionFinished(0, errors.New("boom"))
	m.SubmissionFinished(0, nil)

	expected := `
# HELP formwizard_submissions_total Finished submissions by outcome
# TYPE formwizard_submissions_total counter
formwizard_submissions_total{outcome="failed"} 1
formwizard_submissions_total{outcome="succeeded"} 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "formwizard_submissions_total"); err != nil {
		t.Fatalf("unexpected submissions metric: %v", err)
	}
	if got := testutil.CollectAndCount(m.duration); got != 1 {
		t.Fatalf("duration histogram series = %d", got)
	}
}

func TestMetricsSessionsGauge(t *testing.T) {
	m, err := New(nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	if got := testutil.ToFloat64(m.sessions); got != 1 {
		t.Fatalf("active sessions = %v", got)
	}
}

func TestNewReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := New(reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := New(reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	first.SubmissionFinished(0, nil)
	if got := testutil.ToFloat64(second.submissions.WithLabelValues(OutcomeSucceeded)); got != 1 {
		t.Fatalf("collectors were not shared, got %v", got)
	}
}
