package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const (
	// DefaultSubject is the subject submissions are published on.
	DefaultSubject = "formwizard.submissions"
	// DefaultNATSTimeout bounds a publish flush or a request.
	DefaultNATSTimeout = 5 * time.Second
)

// Conn is the subset of *nats.Conn used by the NATS transport.
type Conn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	RequestWithContext(ctx context.Context, subject string, data []byte) (*nats.Msg, error)
}

var _ Conn = (*nats.Conn)(nil)

// NATSOption configures a NATS transport.
type NATSOption func(*NATS)

// WithSubject overrides DefaultSubject.
func WithSubject(subject string) NATSOption {
	return func(t *NATS) {
		if subject = strings.TrimSpace(subject); subject != "" {
			t.subject = subject
		}
	}
}

// WithRequestReply makes Submit wait for a reply instead of fire-and-forget.
func WithRequestReply(enabled bool) NATSOption {
	return func(t *NATS) {
		t.requestReply = enabled
	}
}

// WithNATSTimeout bounds each flush or request.
func WithNATSTimeout(d time.Duration) NATSOption {
	return func(t *NATS) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithNATSLogger sets the logger used for tracing.
func WithNATSLogger(logger *zap.Logger) NATSOption {
	return func(t *NATS) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NATS publishes records as JSON on a subject. In request/reply mode the
// receiver answers with {"ok": bool, "errors": {...}, "message": "..."}.
type NATS struct {
	conn         Conn
	subject      string
	requestReply bool
	timeout      time.Duration
	logger       *zap.Logger
}

var _ wizard.Transport = (*NATS)(nil)

// NewNATS returns a transport over conn.
func NewNATS(conn Conn, options ...NATSOption) (*NATS, error) {
	if conn == nil {
		return nil, errors.New("transport: nats connection is required")
	}
	t := &NATS{
		conn:    conn,
		subject: DefaultSubject,
		timeout: DefaultNATSTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
	return t, nil
}

// Submit implements wizard.Transport.
func (t *NATS) Submit(ctx context.Context, record wizard.FormRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("transport: encode record: %w", err)
	}

	// FlushWithContext requires a deadline.
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	if !t.requestReply {
		if err := t.conn.Publish(t.subject, data); err != nil {
			return fmt.Errorf("transport: publish %s: %w", t.subject, err)
		}
		if err := t.conn.FlushWithContext(ctx); err != nil {
			return fmt.Errorf("transport: flush %s: %w", t.subject, err)
		}
		t.logger.Debug("submission published", zap.String("subject", t.subject))
		return nil
	}

	msg, err := t.conn.RequestWithContext(ctx, t.subject, data)
	if err != nil {
		return fmt.Errorf("transport: request %s: %w", t.subject, err)
	}
	t.logger.Debug("submission acknowledged", zap.String("subject", t.subject))
	return replyError(msg.Data)
}

// Reply is the acknowledgement sent by a NATS receiver.
type Reply struct {
	OK      bool                `json:"ok"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Message string              `json:"message,omitempty"`
}

func replyError(data []byte) error {
	var body rejectionBody
	if err := json.Unmarshal(data, &body); err != nil {
		return fmt.Errorf("transport: decode reply: %w", err)
	}
	if body.OK != nil && *body.OK {
		return nil
	}
	rejection := &FieldErrors{ErrorMapping: body.mapping()}
	if len(rejection.Fields) == 0 && len(rejection.Form) == 0 {
		rejection.Form = []string{"Submission was not accepted"}
	}
	return rejection
}
