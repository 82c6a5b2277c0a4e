package wizard

import "testing"

func TestNavigator_BoundsAndGate(t *testing.T) {
	store := NewStore()
	nav := NewNavigator(store)

	if nav.Retreat() {
		t.Fatalf("retreat from step 1 must be a no-op")
	}
	if nav.Advance() || nav.Current() != 1 {
		t.Fatalf("empty step 1 advanced to %d", nav.Current())
	}

	for _, v := range validValues {
		if err := store.SetField(v.field, v.value); err != nil {
			t.Fatalf("set %s: %v", v.field, err)
		}
	}
	for want := 2; want <= StepCount; want++ {
		if !nav.Advance() {
			t.Fatalf("advance to step %d refused: %v", want, store.Errors())
		}
		if nav.Current() != want {
			t.Fatalf("current = %d, want %d", nav.Current(), want)
		}
	}
	if nav.Advance() || nav.Current() != StepCount {
		t.Fatalf("advance past the last step")
	}
	if got := nav.Step().Label; got != "Review" {
		t.Fatalf("label = %q", got)
	}

	for want := StepCount - 1; want >= 1; want-- {
		if !nav.Retreat() || nav.Current() != want {
			t.Fatalf("retreat to %d failed, current = %d", want, nav.Current())
		}
	}
}

func TestNavigator_AdvanceFromReviewStillValidates(t *testing.T) {
	store := NewStore()
	nav := NewNavigator(store)
	nav.step = ReviewStep

	nav.Advance()
	if _, ok := store.Error(FieldAcceptTerms); !ok {
		t.Fatalf("expected the review step to validate its consent field")
	}
	if nav.Current() != ReviewStep {
		t.Fatalf("current = %d", nav.Current())
	}
}

func TestStepTable(t *testing.T) {
	labels := StepLabels()
	want := []string{"Personal", "Preferences", "Contact", "Review"}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("labels = %v", labels)
		}
	}
	if _, ok := StepAt(0); ok {
		t.Fatalf("step 0 should not exist")
	}
	if _, ok := StepAt(StepCount + 1); ok {
		t.Fatalf("step %d should not exist", StepCount+1)
	}

	contact, _ := StepAt(3)
	optional := contact.Optional()
	wantOptional := []Field{FieldMessage, FieldWebsite, FieldLinkedIn, FieldTwitter}
	if len(optional) != len(wantOptional) {
		t.Fatalf("optional = %v", optional)
	}
	for i := range wantOptional {
		if optional[i] != wantOptional[i] {
			t.Fatalf("optional = %v", optional)
		}
	}

	copied := Steps()
	copied[0].Required[0] = FieldCity
	if steps[0].Required[0] != FieldFirstName {
		t.Fatalf("Steps must return a copy")
	}
}
