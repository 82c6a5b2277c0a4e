package wizard

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Option configures a Wizard.
type Option func(*Wizard)

// WithTransport sets the submission transport. The default succeeds
// immediately.
func WithTransport(t Transport) Option {
	return func(w *Wizard) {
		if t != nil {
			w.transport = t
		}
	}
}

// WithObserver registers an observer. Multiple observers are notified in
// registration order.
func WithObserver(o Observer) Option {
	return func(w *Wizard) {
		if o != nil {
			w.observers = append(w.observers, o)
		}
	}
}

// WithOnComplete registers the completion signal invoked with the submitted
// record once a submission succeeds.
func WithOnComplete(fn func(FormRecord)) Option {
	return func(w *Wizard) {
		w.onComplete = fn
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithClock overrides the time source used to measure submissions.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) {
		if now != nil {
			w.now = now
		}
	}
}

// Wizard is a single form session: the store, the navigator and the
// submission pipeline behind one lock. All methods are safe for concurrent
// use; the lock is never held while the transport runs.
type Wizard struct {
	mu sync.Mutex

	store      *Store
	nav        *Navigator
	status     Status
	submitErr  string
	formErrors []string

	transport  Transport
	observers  []Observer
	onComplete func(FormRecord)
	logger     *zap.Logger
	now        func() time.Time
}

// New returns a wizard on step 1 with the default record.
func New(options ...Option) *Wizard {
	store := NewStore()
	w := &Wizard{
		store:     store,
		nav:       NewNavigator(store),
		transport: nopTransport{},
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w
}

// Snapshot is a read-only copy of the session state for shells.
type Snapshot struct {
	Step        int              `json:"step"`
	StepCount   int              `json:"stepCount"`
	Label       string           `json:"label"`
	Record      FormRecord       `json:"record"`
	Errors      map[Field]string `json:"errors,omitempty"`
	Status      Status           `json:"status"`
	SubmitError string           `json:"submitError,omitempty"`
	FormErrors  []string         `json:"formErrors,omitempty"`
}

// Progress returns the completion percentage shown by progress indicators.
func (s Snapshot) Progress() int {
	if s.StepCount == 0 {
		return 0
	}
	return s.Step * 100 / s.StepCount
}

// IsReview reports whether the snapshot is on the terminal step.
func (s Snapshot) IsReview() bool {
	return s.Step == ReviewStep
}

// Snapshot returns a copy of the current state.
func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Wizard) snapshotLocked() Snapshot {
	step := w.nav.Step()
	snap := Snapshot{
		Step:        step.Index,
		StepCount:   StepCount,
		Label:       step.Label,
		Record:      w.store.Record(),
		Status:      w.status,
		SubmitError: w.submitErr,
		FormErrors:  append([]string(nil), w.formErrors...),
	}
	if errs := w.store.Errors(); len(errs) > 0 {
		snap.Errors = errs
	}
	return snap
}

// SetField stores value in the named field without validating it.
func (w *Wizard) SetField(name Field, value any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.mutableLocked(); err != nil {
		return err
	}
	return w.store.SetField(name, value)
}

// ValidateFields validates the named fields and reports whether all passed.
func (w *Wizard) ValidateFields(names ...Field) bool {
	w.mu.Lock()
	ok := w.store.ValidateFields(names...)
	step := w.nav.Current()
	failures := w.store.failures(names)
	w.mu.Unlock()

	if !ok {
		w.emit(func(o Observer) { o.ValidationFailed(step, failures) })
	}
	return ok
}

// Advance moves to the next step when the active step validates. It reports
// whether the step changed.
func (w *Wizard) Advance() bool {
	w.mu.Lock()
	if w.mutableLocked() != nil {
		w.mu.Unlock()
		return false
	}
	from := w.nav.Current()
	required := steps[from-1].Required
	moved := w.nav.Advance()
	failures := w.store.failures(required)
	w.mu.Unlock()

	if len(failures) > 0 {
		w.logger.Debug("step validation failed", zap.Int("step", from), zap.Int("failures", len(failures)))
		w.emit(func(o Observer) { o.ValidationFailed(from, failures) })
	}
	if moved {
		w.logger.Debug("step advanced", zap.Int("from", from), zap.Int("to", from+1))
		w.emit(func(o Observer) { o.StepChanged(from, from+1) })
	}
	return moved
}

// Retreat moves to the previous step without validating.
func (w *Wizard) Retreat() bool {
	w.mu.Lock()
	if w.mutableLocked() != nil {
		w.mu.Unlock()
		return false
	}
	from := w.nav.Current()
	moved := w.nav.Retreat()
	w.mu.Unlock()

	if moved {
		w.emit(func(o Observer) { o.StepChanged(from, from-1) })
	}
	return moved
}

// GoTo jumps back to an earlier step.
func (w *Wizard) GoTo(index int) bool {
	w.mu.Lock()
	if w.mutableLocked() != nil {
		w.mu.Unlock()
		return false
	}
	from := w.nav.Current()
	moved := w.nav.GoTo(index)
	w.mu.Unlock()

	if moved {
		w.emit(func(o Observer) { o.StepChanged(from, index) })
	}
	return moved
}

// Reset discards the session and starts over on step 1.
func (w *Wizard) Reset() error {
	w.mu.Lock()
	if w.status == StatusSubmitting {
		w.mu.Unlock()
		return ErrSubmissionInFlight
	}
	fromStep, fromStatus := w.nav.Current(), w.status
	w.store.Reset()
	w.nav.reset()
	w.status = StatusIdle
	w.submitErr = ""
	w.formErrors = nil
	w.mu.Unlock()

	if fromStep != 1 {
		w.emit(func(o Observer) { o.StepChanged(fromStep, 1) })
	}
	if fromStatus != StatusIdle {
		w.emit(func(o Observer) { o.StatusChanged(fromStatus, StatusIdle) })
	}
	return nil
}

func (w *Wizard) mutableLocked() error {
	switch w.status {
	case StatusSubmitting:
		return ErrSubmissionInFlight
	case StatusSucceeded:
		return ErrAlreadySubmitted
	default:
		return nil
	}
}

func (w *Wizard) emit(fn func(Observer)) {
	for _, o := range w.observers {
		fn(o)
	}
}
