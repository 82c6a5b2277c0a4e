package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// DefaultHTTPTimeout caps a single submission request.
const DefaultHTTPTimeout = 10 * time.Second

const maxResponseBody = 1 << 20

// HTTPOption configures an HTTP transport.
type HTTPOption func(*HTTP)

// WithHTTPClient injects the client used for requests.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(t *HTTP) {
		if client != nil {
			t.client = client
		}
	}
}

// WithHTTPTimeout caps each request. Zero leaves the caller's context in
// charge.
func WithHTTPTimeout(d time.Duration) HTTPOption {
	return func(t *HTTP) {
		if d >= 0 {
			t.timeout = d
		}
	}
}

// WithHeader adds a request header, e.g. an API key.
func WithHeader(key, value string) HTTPOption {
	return func(t *HTTP) {
		if key = strings.TrimSpace(key); key != "" {
			t.headers.Set(key, value)
		}
	}
}

// WithSchemaCheck toggles validating the payload against the record schema
// before sending. Enabled by default.
func WithSchemaCheck(enabled bool) HTTPOption {
	return func(t *HTTP) {
		t.checkSchema = enabled
	}
}

// WithHTTPLogger sets the logger used for request tracing.
func WithHTTPLogger(logger *zap.Logger) HTTPOption {
	return func(t *HTTP) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// HTTP posts records as JSON to an endpoint. Any 2xx response succeeds.
// Other responses are decoded as {"errors": {path: [messages]}, "message":
// "..."} and returned as *FieldErrors.
type HTTP struct {
	endpoint    string
	client      *http.Client
	timeout     time.Duration
	headers     http.Header
	checkSchema bool
	logger      *zap.Logger
}

var _ wizard.Transport = (*HTTP)(nil)

// NewHTTP returns an HTTP transport posting to endpoint.
func NewHTTP(endpoint string, options ...HTTPOption) (*HTTP, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("transport: http endpoint is required")
	}
	t := &HTTP{
		endpoint:    endpoint,
		client:      http.DefaultClient,
		timeout:     DefaultHTTPTimeout,
		headers:     make(http.Header),
		checkSchema: true,
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
	return t, nil
}

// Submit implements wizard.Transport.
func (t *HTTP) Submit(ctx context.Context, record wizard.FormRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("transport: encode record: %w", err)
	}
	if t.checkSchema {
		if err := schema.ValidatePayload(payload); err != nil {
			return fmt.Errorf("%w: %w", ErrPayload, err)
		}
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("transport: build request: %w", err)
	}
	for key, values := range t.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("transport: post %s: %w", t.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("transport: read response: %w", err)
	}
	t.logger.Debug("submission response",
		zap.String("endpoint", t.endpoint),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return rejectionFromBody(resp.StatusCode, body)
}

// rejectionBody is the error payload understood by HTTP and NATS transports.
// Errors may be a map of path to messages or to a single message.
type rejectionBody struct {
	OK      *bool           `json:"ok,omitempty"`
	Errors  json.RawMessage `json:"errors,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func (b rejectionBody) mapping() ErrorMapping {
	payload := decodeErrorMap(b.Errors)
	mapping := MapErrorPayload(payload)
	mapping.Form = MergeFormErrors(mapping.Form, b.Message, b.Error)
	return mapping
}

func decodeErrorMap(raw json.RawMessage) map[string][]string {
	if len(raw) == 0 {
		return nil
	}
	var many map[string][]string
	if err := json.Unmarshal(raw, &many); err == nil {
		return many
	}
	var single map[string]string
	if err := json.Unmarshal(raw, &single); err == nil {
		out := make(map[string][]string, len(single))
		for key, message := range single {
			out[key] = []string{message}
		}
		return out
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return map[string][]string{"": list}
	}
	return nil
}

func rejectionFromBody(status int, body []byte) error {
	rejection := &FieldErrors{Status: status}
	var decoded rejectionBody
	if len(bytes.TrimSpace(body)) > 0 && json.Unmarshal(body, &decoded) == nil {
		rejection.ErrorMapping = decoded.mapping()
	}
	if len(rejection.Fields) == 0 && len(rejection.Form) == 0 {
		text := http.StatusText(status)
		if text == "" {
			text = "unexpected response"
		}
		rejection.Form = []string{fmt.Sprintf("Submission failed (%d %s)", status, text)}
	}
	return rejection
}
