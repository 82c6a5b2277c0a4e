package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/pkg/transport"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func testRecord() wizard.FormRecord {
	age := 30
	r := wizard.NewRecord()
	r.FirstName, r.LastName = "Grace", "Hopper"
	r.Email = "grace@example.com"
	r.Age = &age
	r.Gender = wizard.GenderFemale
	r.Interests = []string{"technology", "reading"}
	r.Phone = "+1 202 555 0100"
	r.Address = "1 Navy Yard"
	r.City = "Arlington"
	r.Country = "US"
	r.AcceptTerms = true
	return r
}

func TestOpen_Delay(t *testing.T) {
	cfg := config.Default()
	cfg.SubmitDelay = time.Millisecond
	rt, err := Open(&cfg, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rt.Close()

	if _, ok := rt.Transport.(*transport.Delay); !ok {
		t.Fatalf("transport = %T", rt.Transport)
	}
	if err := rt.Transport.Submit(context.Background(), testRecord()); err != nil {
		t.Fatalf("submit: %v", err)
	}
}

func TestOpen_HTTPRequiresEndpoint(t *testing.T) {
	cfg := config.Default()
	cfg.Transport = config.TransportHTTP
	if _, err := Open(&cfg, nil); err == nil {
		t.Fatalf("expected error without endpoint")
	}

	cfg.HTTPEndpoint = "http://127.0.0.1:1/submissions"
	rt, err := Open(&cfg, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rt.Close()
	if _, ok := rt.Transport.(*transport.HTTP); !ok {
		t.Fatalf("transport = %T", rt.Transport)
	}
}

func TestOpen_EmbeddedNATSRequestReply(t *testing.T) {
	cfg := config.Default()
	cfg.Transport = config.TransportNATS
	cfg.NATSRequestReply = true
	rt, err := Open(&cfg, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rt.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rt.Transport.Submit(ctx, testRecord()); err != nil {
		t.Fatalf("submit: %v", err)
	}
}

func TestOpen_UnknownTransport(t *testing.T) {
	cfg := config.Default()
	cfg.Transport = "carrier-pigeon"
	if _, err := Open(&cfg, nil); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("err = %v", err)
	}
}
