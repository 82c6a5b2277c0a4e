// Package formwizard is the top-level entry point: it re-exports the core
// session types and offers shortcuts for the common wiring of a wizard and the
// HTML shell.
package formwizard

import (
	"context"

	"github.com/goliatone/go-formwizard/pkg/renderers/web"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// FormRecord aliases wizard.FormRecord.
type FormRecord = wizard.FormRecord

// Snapshot aliases wizard.Snapshot.
type Snapshot = wizard.Snapshot

// Transport aliases wizard.Transport.
type Transport = wizard.Transport

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, record FormRecord) error

// Submit implements Transport.
func (fn TransportFunc) Submit(ctx context.Context, record FormRecord) error {
	if fn == nil {
		return ctx.Err()
	}
	return fn(ctx, record)
}

// NewWizard returns a session delivering through t.
func NewWizard(t Transport, options ...wizard.Option) *wizard.Wizard {
	return wizard.New(append([]wizard.Option{wizard.WithTransport(t)}, options...)...)
}

// NewHandler returns the HTML shell with every session delivering through t.
// Callers should Close the returned server on shutdown.
func NewHandler(t Transport, options ...web.Option) (*web.Server, error) {
	return web.NewServer(append([]web.Option{web.WithTransport(t)}, options...)...)
}
