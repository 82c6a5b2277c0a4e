package web

import (
	"fmt"
	"sort"
	"strings"
)

const (
	csrfFieldName = "_csrf"
	stepFieldName = "_step"
)

// HiddenField is a hidden input emitted with every wizard form.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken returns the hidden field carrying the session token.
func CSRFToken(token string) HiddenField {
	return Hidden(csrfFieldName, token)
}

// SortedHiddenFields drops empty names, lets later fields win on collisions
// and sorts by name for deterministic rendering.
func SortedHiddenFields(fields ...HiddenField) []HiddenField {
	clean := make(map[string]string, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		clean[name] = field.Value
	}
	if len(clean) == 0 {
		return nil
	}

	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: clean[name]})
	}
	return result
}
