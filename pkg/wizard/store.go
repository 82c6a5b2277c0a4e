package wizard

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Store owns the record and the per-field error messages. It never validates
// on write; validation runs only when ValidateFields is called. Store is not
// safe for concurrent use on its own; Wizard serializes access to it.
type Store struct {
	record FormRecord
	errors map[Field]string
}

// NewStore returns a store seeded with the default record.
func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset restores the default record and clears every error.
func (s *Store) Reset() {
	s.record = NewRecord()
	s.errors = make(map[Field]string)
}

// Record returns a copy of the current record.
func (s *Store) Record() FormRecord {
	return s.record.Clone()
}

// Errors returns a copy of the current error messages.
func (s *Store) Errors() map[Field]string {
	out := make(map[Field]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// Error returns the message recorded for f, if any.
func (s *Store) Error(f Field) (string, bool) {
	msg, ok := s.errors[f]
	return msg, ok
}

// SetField overwrites the value of name. Values are coerced from the natural
// Go type of the field or from the string encodings shells produce. A value
// that cannot be stored leaves the record untouched.
func (s *Store) SetField(name Field, value any) error {
	if _, ok := s.record.Value(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	if target := s.record.stringField(name); target != nil {
		str, ok := value.(string)
		if !ok {
			return invalidValue(name, "expected string, got %T", value)
		}
		*target = str
		return nil
	}

	if target := s.record.boolField(name); target != nil {
		b, err := coerceBool(value)
		if err != nil {
			return invalidValue(name, "%v", err)
		}
		*target = b
		return nil
	}

	switch name {
	case FieldAge:
		age, err := coerceAge(value)
		if err != nil {
			return invalidValue(name, "%v", err)
		}
		s.record.Age = age
	case FieldGender:
		g, err := coerceGender(value)
		if err != nil {
			return invalidValue(name, "%v", err)
		}
		s.record.Gender = g
	case FieldInterests:
		interests, err := coerceInterests(value)
		if err != nil {
			return invalidValue(name, "%v", err)
		}
		s.record.Interests = interests
	}
	return nil
}

// ValidateFields runs the rule of each named field against the record,
// recording failures and clearing errors for fields that now pass. It reports
// whether every named field passed.
func (s *Store) ValidateFields(names ...Field) bool {
	valid := true
	for _, f := range names {
		if err := Check(s.record, f); err != nil {
			s.errors[f] = err.Error()
			valid = false
			continue
		}
		delete(s.errors, f)
	}
	return valid
}

// ValidateAll validates every constrained field.
func (s *Store) ValidateAll() bool {
	return s.ValidateFields(fieldOrder...)
}

// failures returns the messages for the given fields that currently fail.
func (s *Store) failures(names []Field) map[Field]string {
	out := make(map[Field]string)
	for _, f := range names {
		if msg, ok := s.errors[f]; ok {
			out[f] = msg
		}
	}
	return out
}

func (s *Store) setError(f Field, message string) {
	s.errors[f] = message
}

func coerceBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "yes", "1":
			return true, nil
		case "false", "off", "no", "0", "":
			return false, nil
		}
		return false, fmt.Errorf("cannot parse %q as boolean", v)
	default:
		return false, fmt.Errorf("expected boolean, got %T", value)
	}
}

func coerceAge(value any) (*int, error) {
	var n int
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *int:
		if v == nil {
			return nil, nil
		}
		n = *v
	case int:
		n = v
	case int32:
		n = int(v)
	case int64:
		n = int(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return nil, fmt.Errorf("expected whole number, got %v", v)
		}
		n = int(v)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as a whole number", v)
		}
		n = parsed
	default:
		return nil, fmt.Errorf("expected integer, got %T", value)
	}
	return &n, nil
}

func coerceGender(value any) (Gender, error) {
	switch v := value.(type) {
	case Gender:
		return v, nil
	case string:
		return Gender(v), nil
	default:
		return "", fmt.Errorf("expected gender string, got %T", value)
	}
}

// coerceInterests returns the selection as a set ordered by catalog position.
func coerceInterests(value any) ([]string, error) {
	var raw []string
	switch v := value.(type) {
	case nil:
	case []string:
		raw = v
	case string:
		if v != "" {
			raw = []string{v}
		}
	case []any:
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected interest id string, got %T", item)
			}
			raw = append(raw, str)
		}
	default:
		return nil, fmt.Errorf("expected list of interest ids, got %T", value)
	}

	selected := make([]bool, len(interestCatalog))
	for _, id := range raw {
		idx := catalogIndex(id)
		if idx < 0 {
			return nil, fmt.Errorf("interest %q is not in the catalog", id)
		}
		selected[idx] = true
	}
	out := make([]string, 0, len(raw))
	for i, ok := range selected {
		if ok {
			out = append(out, interestCatalog[i].ID)
		}
	}
	return out, nil
}
