package transport_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-formwizard/pkg/transport"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func TestDelaySubmitLogsRecord(t *testing.T) {
	defer goleak.VerifyNone(t)

	core, logs := observer.New(zapcore.InfoLevel)
	tr := transport.NewDelay(
		transport.WithDelay(5*time.Millisecond),
		transport.WithDelayLogger(zap.New(core)),
	)

	record := wizard.NewRecord()
	record.Email = "ada@example.com"
	if err := tr.Submit(context.Background(), record); err != nil {
		t.Fatalf("submit: %v", err)
	}

	entries := logs.FilterMessage("form submitted").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["email"]; got != "ada@example.com" {
		t.Fatalf("logged email = %v", got)
	}
}

func TestDelaySubmitHonoursCancellation(t *testing.T) {
	defer goleak.VerifyNone(t)

	tr := transport.NewDelay(transport.WithDelay(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := tr.Submit(ctx, wizard.NewRecord())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("cancellation was not honoured")
	}
}

func TestFuncAdapter(t *testing.T) {
	var got wizard.FormRecord
	fn := transport.Func(func(_ context.Context, r wizard.FormRecord) error {
		got = r
		return nil
	})
	record := wizard.NewRecord()
	record.City = "Paris"
	if err := fn.Submit(context.Background(), record); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.City != "Paris" {
		t.Fatalf("record not forwarded: %+v", got)
	}

	var empty transport.Func
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := empty.Submit(ctx, record); !errors.Is(err, context.Canceled) {
		t.Fatalf("nil func err = %v", err)
	}
}
