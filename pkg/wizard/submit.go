package wizard

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Submit runs the submission pipeline from the review step: it validates the
// consent field and the rest of the record, delivers the record through the
// transport and marks the session succeeded. A transport failure reverts the
// session to idle with SubmitError set; it is not retried.
func (w *Wizard) Submit(ctx context.Context) error {
	pending, err := w.beginSubmit(ctx)
	if err != nil {
		return err
	}
	return pending.deliver(ctx)
}

// SubmitAsync validates synchronously and, once the session is submitting,
// delivers the record on a new goroutine. The returned channel yields the
// delivery result exactly once and is then closed. Errors returned directly
// mean nothing was started.
func (w *Wizard) SubmitAsync(ctx context.Context) (<-chan error, error) {
	pending, err := w.beginSubmit(ctx)
	if err != nil {
		return nil, err
	}
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- pending.deliver(ctx)
	}()
	return done, nil
}

type submission struct {
	w         *Wizard
	record    FormRecord
	transport Transport
}

func (w *Wizard) beginSubmit(ctx context.Context) (*submission, error) {
	if ctx == nil {
		return nil, errors.New("wizard: context is required")
	}

	w.mu.Lock()
	if err := w.mutableLocked(); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	if w.nav.Current() != ReviewStep {
		w.mu.Unlock()
		return nil, ErrNotOnReviewStep
	}

	termsOK := w.store.ValidateFields(steps[ReviewStep-1].Required...)
	recordOK := w.store.ValidateAll()
	if !termsOK || !recordOK {
		failures := w.store.Errors()
		w.mu.Unlock()
		w.emit(func(o Observer) { o.ValidationFailed(ReviewStep, failures) })
		return nil, &ValidationError{Fields: failures}
	}

	pending := &submission{
		w:         w,
		record:    w.store.Record(),
		transport: w.transport,
	}
	w.status = StatusSubmitting
	w.submitErr = ""
	w.formErrors = nil
	w.mu.Unlock()

	w.emit(func(o Observer) { o.StatusChanged(StatusIdle, StatusSubmitting) })
	w.logger.Debug("submission started")
	return pending, nil
}

func (s *submission) deliver(ctx context.Context) error {
	w := s.w
	start := w.now()
	err := s.transport.Submit(ctx, s.record)
	elapsed := w.now().Sub(start)

	w.mu.Lock()
	if err != nil {
		w.status = StatusIdle
		w.submitErr = err.Error()
		w.applyReportLocked(err)
		w.mu.Unlock()

		w.logger.Debug("submission failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		w.emit(func(o Observer) {
			o.StatusChanged(StatusSubmitting, StatusIdle)
			o.SubmissionFinished(elapsed, err)
		})
		return fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	w.status = StatusSucceeded
	onComplete := w.onComplete
	w.mu.Unlock()

	w.logger.Debug("submission succeeded", zap.Duration("elapsed", elapsed))
	w.emit(func(o Observer) {
		o.StatusChanged(StatusSubmitting, StatusSucceeded)
		o.SubmissionFinished(elapsed, nil)
	})
	if onComplete != nil {
		onComplete(s.record.Clone())
	}
	return nil
}

// applyReportLocked copies field feedback carried by a transport error into
// the error map.
func (w *Wizard) applyReportLocked(err error) {
	var report FieldReporter
	if !errors.As(err, &report) {
		return
	}
	for name, messages := range report.FieldMessages() {
		f, ok := ParseField(name)
		if !ok || len(messages) == 0 {
			continue
		}
		w.store.setError(f, messages[0])
	}
	w.formErrors = append([]string(nil), report.FormMessages()...)
}
