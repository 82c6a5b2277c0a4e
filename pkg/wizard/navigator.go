package wizard

// Navigator is the step state machine over [1, StepCount]. Forward moves are
// gated on the active step's required fields; backward moves never validate.
type Navigator struct {
	store *Store
	step  int
}

// NewNavigator returns a navigator positioned on the first step.
func NewNavigator(store *Store) *Navigator {
	return &Navigator{store: store, step: 1}
}

// Current returns the active 1-based step index.
func (n *Navigator) Current() int {
	return n.step
}

// Step returns the active step definition.
func (n *Navigator) Step() Step {
	s, _ := StepAt(n.step)
	return s
}

// Advance validates the active step and moves forward when every required
// field passes. Validity is recomputed on every call so stale errors never
// block a field that has since been fixed. On the review step it validates but
// never moves. It reports whether the step changed.
func (n *Navigator) Advance() bool {
	current := steps[n.step-1]
	if !n.store.ValidateFields(current.Required...) {
		return false
	}
	if n.step >= StepCount {
		return false
	}
	n.step++
	return true
}

// Retreat moves one step back when not on the first step. Entered data and
// errors are left as they are.
func (n *Navigator) Retreat() bool {
	if n.step <= 1 {
		return false
	}
	n.step--
	return true
}

// GoTo jumps back to an earlier step, as review screens do for "edit" links.
// Jumps forward or to the current step are refused so the validation gate in
// Advance cannot be skipped.
func (n *Navigator) GoTo(index int) bool {
	if index < 1 || index >= n.step {
		return false
	}
	n.step = index
	return true
}

func (n *Navigator) reset() {
	n.step = 1
}
