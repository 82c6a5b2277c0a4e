package transport

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// DefaultDelay is the simulated network latency of Delay.
const DefaultDelay = 2 * time.Second

// DelayOption configures a Delay transport.
type DelayOption func(*Delay)

// WithDelay sets the simulated latency. Zero completes immediately.
func WithDelay(d time.Duration) DelayOption {
	return func(t *Delay) {
		if d >= 0 {
			t.wait = d
		}
	}
}

// WithDelayLogger sets the logger that receives the submitted record.
func WithDelayLogger(logger *zap.Logger) DelayOption {
	return func(t *Delay) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// Delay simulates a remote submission: it waits, logs the record and
// succeeds. Cancelling ctx aborts the wait.
type Delay struct {
	wait   time.Duration
	logger *zap.Logger
}

var _ wizard.Transport = (*Delay)(nil)

// NewDelay returns a Delay transport with DefaultDelay.
func NewDelay(options ...DelayOption) *Delay {
	t := &Delay{wait: DefaultDelay, logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Submit implements wizard.Transport.
func (t *Delay) Submit(ctx context.Context, record wizard.FormRecord) error {
	if t.wait > 0 {
		timer := time.NewTimer(t.wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}
	t.logger.Info("form submitted",
		zap.String("email", record.Email),
		zap.Any("record", record),
	)
	return nil
}
