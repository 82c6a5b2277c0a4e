package transport_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nats-io/nats.go"

	"github.com/goliatone/go-formwizard/pkg/transport"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func startNATS(t *testing.T) *nats.Conn {
	t.Helper()
	ns, nc, err := transport.StartEmbedded()
	if err != nil {
		t.Fatalf("start embedded nats: %v", err)
	}
	t.Cleanup(func() { transport.Shutdown(nc, ns) })
	return nc
}

func TestNATSPublish(t *testing.T) {
	nc := startNATS(t)

	received := make(chan *nats.Msg, 1)
	sub, err := nc.ChanSubscribe("signups.test", received)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Unsubscribe()

	tr, err := transport.NewNATS(nc, transport.WithSubject("signups.test"))
	if err != nil {
		t.Fatalf("new nats transport: %v", err)
	}
	want := validRecord()
	if err := tr.Submit(context.Background(), want); err != nil {
		t.Fatalf("submit: %v", err)
	}

	select {
	case msg := <-received:
		var got wizard.FormRecord
		if err := json.Unmarshal(msg.Data, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("published record mismatch (-want +got):\n%s", diff)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no message published")
	}
}

func TestNATSRequestReply(t *testing.T) {
	nc := startNATS(t)

	var seen []string
	sub, err := transport.Receive(nc, "", nil, func(r wizard.FormRecord) error {
		seen = append(seen, r.Email)
		if r.Email == "taken@example.com" {
			return &transport.FieldErrors{ErrorMapping: transport.ErrorMapping{
				Fields: map[string][]string{"email": {"Email already registered"}},
				Form:   []string{"Duplicate signup"},
			}}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	defer sub.Unsubscribe()

	tr, _ := transport.NewNATS(nc, transport.WithRequestReply(true), transport.WithNATSTimeout(2*time.Second))
	if err := tr.Submit(context.Background(), validRecord()); err != nil {
		t.Fatalf("accepted submit: %v", err)
	}

	taken := validRecord()
	taken.Email = "taken@example.com"
	err = tr.Submit(context.Background(), taken)
	var rejection *transport.FieldErrors
	if !errors.As(err, &rejection) {
		t.Fatalf("expected *FieldErrors, got %v", err)
	}
	if diff := cmp.Diff(map[string][]string{"email": {"Email already registered"}}, rejection.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Duplicate signup"}, rejection.Form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"alan@example.com", "taken@example.com"}, seen); diff != "" {
		t.Fatalf("handler calls mismatch (-want +got):\n%s", diff)
	}
}

func TestNATSRequestWithoutResponder(t *testing.T) {
	nc := startNATS(t)

	tr, _ := transport.NewNATS(nc,
		transport.WithSubject("nobody.listens"),
		transport.WithRequestReply(true),
		transport.WithNATSTimeout(500*time.Millisecond),
	)
	if err := tr.Submit(context.Background(), validRecord()); err == nil {
		t.Fatalf("expected an error without a responder")
	}
}

func TestNewNATSRequiresConn(t *testing.T) {
	if _, err := transport.NewNATS(nil); err == nil {
		t.Fatalf("expected error for nil connection")
	}
}
