package transport

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

var (
	// ErrRejected is the sentinel FieldErrors unwraps to.
	ErrRejected = errors.New("transport: submission rejected")
	// ErrPayload is returned when a record fails the schema check before
	// leaving the process.
	ErrPayload = errors.New("transport: payload failed schema check")
)

// ErrorMapping splits a receiver error payload into field-level messages
// keyed by FormRecord JSON names and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// FieldErrors is returned when the receiving side rejects a submission. It
// implements wizard.FieldReporter.
type FieldErrors struct {
	// Status is the HTTP status code, or zero for non-HTTP transports.
	Status int
	ErrorMapping
}

var _ wizard.FieldReporter = (*FieldErrors)(nil)

func (e *FieldErrors) Error() string {
	if e == nil {
		return ErrRejected.Error()
	}
	if len(e.Form) > 0 {
		return strings.Join(e.Form, "; ")
	}
	if n := len(e.Fields); n > 0 {
		return fmt.Sprintf("submission rejected: %d field(s) need attention", n)
	}
	if e.Status != 0 {
		return "submission rejected with status " + strconv.Itoa(e.Status)
	}
	return "submission rejected"
}

func (e *FieldErrors) Unwrap() error { return ErrRejected }

// FieldMessages returns the field-level messages.
func (e *FieldErrors) FieldMessages() map[string][]string {
	if e == nil {
		return nil
	}
	return e.Fields
}

// FormMessages returns the form-level messages.
func (e *FieldErrors) FormMessages() []string {
	if e == nil {
		return nil
	}
	return e.Form
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalises receiver error paths onto FormRecord fields.
// JSON pointers (/body/email), dotted and bracketed paths
// ($.data.interests[0]) and wrapper segments (body, request, payload, data,
// attributes) are understood. Paths that do not name a field become
// form-level messages so nothing is lost.
func MapErrorPayload(payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		field, ok := mapErrorPath(rawPath)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[field] = append(mapping.Fields[field], normalized...)
	}
	for field, messages := range mapping.Fields {
		mapping.Fields[field] = normalizeMessages(messages)
	}
	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// mapErrorPath returns the FormRecord field named by raw. The record is flat,
// so the first segment left after dropping wrappers must be a field name;
// deeper segments (interest indexes) collapse onto it.
func mapErrorPath(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", false
	}
	segments := dropWrapperSegments(parsePathSegments(trimmed))
	if len(segments) == 0 {
		return "", false
	}
	if f, ok := lookupField(segments[0]); ok {
		return string(f), true
	}
	return "", false
}

func lookupField(name string) (wizard.Field, bool) {
	if f, ok := wizard.ParseField(name); ok {
		return f, true
	}
	folded := strings.ReplaceAll(strings.ReplaceAll(name, "_", ""), "-", "")
	for _, f := range wizard.Fields() {
		if strings.EqualFold(string(f), folded) {
			return f, true
		}
	}
	return "", false
}

func parsePathSegments(path string) []string {
	if path == "" {
		return nil
	}

	clean := strings.TrimSpace(path)
	clean = strings.TrimPrefix(clean, "#/")
	clean = strings.TrimPrefix(clean, "$/")
	clean = strings.TrimPrefix(clean, "$.")
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimPrefix(clean, "#")
		clean = strings.TrimPrefix(clean, "/")
		clean = strings.TrimPrefix(clean, ".")
		clean = strings.TrimPrefix(clean, "$")
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
	"record":     {},
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 {
		if _, ok := wrapperSegments[strings.ToLower(out[0])]; !ok {
			break
		}
		out = out[1:]
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
