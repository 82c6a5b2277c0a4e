package transport

import (
	"context"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Func adapts a plain function to wizard.Transport.
type Func func(ctx context.Context, record wizard.FormRecord) error

// Submit implements wizard.Transport.
func (fn Func) Submit(ctx context.Context, record wizard.FormRecord) error {
	if fn == nil {
		return ctx.Err()
	}
	return fn(ctx, record)
}
