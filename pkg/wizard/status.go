package wizard

import (
	"context"
	"fmt"
	"time"
)

// Status is the submission lifecycle of a session.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = StatusIdle
	case "submitting":
		*s = StatusSubmitting
	case "succeeded":
		*s = StatusSucceeded
	default:
		return fmt.Errorf("wizard: unknown status %q", text)
	}
	return nil
}

// Transport delivers a validated record. Implementations should honour ctx
// cancellation; a returned error reverts the session to idle.
type Transport interface {
	Submit(ctx context.Context, record FormRecord) error
}

type nopTransport struct{}

func (nopTransport) Submit(ctx context.Context, _ FormRecord) error {
	return ctx.Err()
}

// Observer receives notifications after the session lock is released, so
// implementations may read the wizard again.
type Observer interface {
	StepChanged(from, to int)
	ValidationFailed(step int, failures map[Field]string)
	StatusChanged(from, to Status)
	SubmissionFinished(elapsed time.Duration, err error)
}

// NopObserver implements Observer with no-ops; embed it to override a subset.
type NopObserver struct{}

func (NopObserver) StepChanged(int, int) {}
func (NopObserver) ValidationFailed(int, map[Field]string) {}
func (NopObserver) StatusChanged(Status, Status) {}
func (NopObserver) SubmissionFinished(time.Duration, error) {}
