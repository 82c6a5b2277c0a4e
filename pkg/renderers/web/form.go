package web

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

var errUnknownAction = errors.New("web: unknown action")

type actionKind int

const (
	actionNext actionKind = iota
	actionBack
	actionSubmit
	actionReset
	actionEdit
)

type action struct {
	kind actionKind
	step int
}

// parseAction reads the posted action button. An empty action means next so
// pressing enter in a text input advances.
func parseAction(raw string) (action, error) {
	switch raw = strings.TrimSpace(raw); raw {
	case "", "next":
		return action{kind: actionNext}, nil
	case "back":
		return action{kind: actionBack}, nil
	case "submit":
		return action{kind: actionSubmit}, nil
	case "reset":
		return action{kind: actionReset}, nil
	}
	if rest, ok := strings.CutPrefix(raw, "edit-"); ok {
		if n, err := strconv.Atoi(rest); err == nil {
			return action{kind: actionEdit, step: n}, nil
		}
	}
	return action{}, fmt.Errorf("%w: %q", errUnknownAction, raw)
}

// applyForm writes the posted values of every field the step displays.
// Unchecked checkboxes are absent from the form and clear the field.
func applyForm(w *wizard.Wizard, step wizard.Step, form url.Values) error {
	for _, f := range step.Fields {
		var value any
		switch fieldKind(f) {
		case kindCheckbox:
			value = form.Get(string(f))
		case kindCheckboxes:
			value = append([]string{}, form[string(f)]...)
		default:
			if !form.Has(string(f)) {
				continue
			}
			value = form.Get(string(f))
		}
		if err := w.SetField(f, value); err != nil {
			return err
		}
	}
	return nil
}
