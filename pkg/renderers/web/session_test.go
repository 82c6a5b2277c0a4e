package web

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-formwizard/pkg/transport"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func reviewReadyWizard(t *testing.T, options ...wizard.Option) *wizard.Wizard {
	t.Helper()
	w := wizard.New(options...)
	for i, values := range stepValues {
		step, _ := wizard.StepAt(i + 1)
		if err := applyForm(w, step, values); err != nil {
			t.Fatalf("step %d: %v", i+1, err)
		}
		if i+1 < wizard.ReviewStep && !w.Advance() {
			t.Fatalf("advance from %d: %v", i+1, w.Snapshot().Errors)
		}
	}
	return w
}

func TestSessionStore_KeepsSubmittingSessions(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	release := make(chan struct{})
	blocking := transport.Func(func(ctx context.Context, _ wizard.FormRecord) error {
		select {
		case <-release:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	var built []*wizard.Wizard
	store := newSessionStore(time.Minute, func() time.Time { return now }, func() *wizard.Wizard {
		w := reviewReadyWizard(t, wizard.WithTransport(blocking))
		built = append(built, w)
		return w
	})
	expired := 0
	store.onExpire = func() { expired++ }

	busy := store.create()
	idle := store.create()

	done, err := busy.wizard.SubmitAsync(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	now = now.Add(5 * time.Minute)
	if _, ok := store.get(idle.id); ok {
		t.Fatalf("idle session should have expired")
	}
	if _, ok := store.get(busy.id); !ok {
		t.Fatalf("submitting session must not expire")
	}
	if expired != 1 || store.len() != 1 {
		t.Fatalf("expired = %d, len = %d", expired, store.len())
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("delivery: %v", err)
	}
	if len(built) != 2 || busy.csrf == "" || busy.csrf == idle.csrf || busy.id == idle.id {
		t.Fatalf("sessions should get distinct ids and tokens")
	}
}
