package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrInvalidPayload is the sentinel PayloadError unwraps to.
var ErrInvalidPayload = errors.New("schema: payload does not match FormRecord")

// Issue is a single schema violation.
type Issue struct {
	Pointer string `json:"pointer"`
	Reason  string `json:"reason"`
}

// PayloadError lists every violation found in a payload.
type PayloadError struct {
	Issues []Issue
}

func (e *PayloadError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return ErrInvalidPayload.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Pointer+": "+issue.Reason)
	}
	return ErrInvalidPayload.Error() + ": " + strings.Join(parts, "; ")
}

func (e *PayloadError) Unwrap() error {
	return ErrInvalidPayload
}

// Fields groups issue reasons by top-level property name.
func (e *PayloadError) Fields() map[string][]string {
	if e == nil {
		return nil
	}
	out := make(map[string][]string)
	for _, issue := range e.Issues {
		name := strings.TrimPrefix(issue.Pointer, "/")
		if idx := strings.IndexByte(name, '/'); idx >= 0 {
			name = name[:idx]
		}
		out[name] = append(out[name], issue.Reason)
	}
	return out
}

var (
	recordOnce   sync.Once
	recordSchema *openapi3.Schema
)

func compiledRecord() *openapi3.Schema {
	recordOnce.Do(func() {
		recordSchema = RecordSchema()
	})
	return recordSchema
}

// ValidatePayload checks value against the FormRecord schema. value may be a
// wizard.FormRecord, a map or raw JSON bytes; it is normalised through JSON
// first so numbers and field names match what goes over the wire.
func ValidatePayload(value any) error {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case json.RawMessage:
		raw = v
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("schema: encode payload: %w", err)
		}
		raw = encoded
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("schema: decode payload: %w", err)
	}

	err := compiledRecord().VisitJSON(doc, openapi3.MultiErrors())
	if err == nil {
		return nil
	}
	issues := collectIssues(nil, err)
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Pointer < issues[j].Pointer
	})
	return &PayloadError{Issues: issues}
}

func collectIssues(dst []Issue, err error) []Issue {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, inner := range e {
			dst = collectIssues(dst, inner)
		}
		return dst
	case *openapi3.SchemaError:
		return append(dst, Issue{
			Pointer: "/" + strings.Join(e.JSONPointer(), "/"),
			Reason:  e.Reason,
		})
	default:
		return append(dst, Issue{Pointer: "/", Reason: err.Error()})
	}
}
