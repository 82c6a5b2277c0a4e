package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Shell drives a wizard session through terminal prompts. It only reads
// snapshots and calls wizard operations; every rule lives in the core.
type Shell struct {
	driver       PromptDriver
	out          io.Writer
	outputFormat OutputFormat
	theme        Theme
	logger       *zap.Logger
}

// New constructs a shell with defaults (survey driver, pretty output to
// stdout).
func New(options ...Option) *Shell {
	s := &Shell{
		out:          os.Stdout,
		outputFormat: OutputFormatPrettyText,
		theme:        DefaultTheme,
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(s.out)
	}
	return s
}

type action int

const (
	actionNext action = iota
	actionBack
	actionSubmit
	actionEdit
	actionQuit
)

type choice struct {
	label  string
	action action
	step   int
}

// Run prompts until the session succeeds and then writes the submitted
// record to the output. It returns the record, or ErrAborted when the user
// quits.
func (s *Shell) Run(ctx context.Context, w *wizard.Wizard) (wizard.FormRecord, error) {
	if ctx == nil {
		return wizard.FormRecord{}, errors.New("tui: context is required")
	}
	if w == nil {
		return wizard.FormRecord{}, errors.New("tui: wizard is required")
	}
	if s.driver == nil {
		return wizard.FormRecord{}, ErrNoDriver
	}

	for {
		if err := ctx.Err(); err != nil {
			return wizard.FormRecord{}, err
		}
		snap := w.Snapshot()
		if snap.Status == wizard.StatusSucceeded {
			return snap.Record, s.writeRecord(snap.Record)
		}

		step, _ := wizard.StepAt(snap.Step)
		if err := s.info(ctx, fmt.Sprintf("Step %d of %d: %s (%d%%)", snap.Step, snap.StepCount, step.Title, snap.Progress())); err != nil {
			return wizard.FormRecord{}, err
		}
		if snap.IsReview() {
			if err := s.info(ctx, Summary(snap.Record)); err != nil {
				return wizard.FormRecord{}, err
			}
		}
		if err := s.promptStep(ctx, w, step); err != nil {
			return wizard.FormRecord{}, err
		}

		picked, err := s.pickAction(ctx, snap)
		if err != nil {
			return wizard.FormRecord{}, err
		}
		switch picked.action {
		case actionNext:
			if !w.Advance() {
				if err := s.warn(ctx, "Please fix the highlighted fields"); err != nil {
					return wizard.FormRecord{}, err
				}
			}
		case actionBack:
			w.Retreat()
		case actionEdit:
			w.GoTo(picked.step)
		case actionSubmit:
			if err := s.submit(ctx, w); err != nil {
				return wizard.FormRecord{}, err
			}
		case actionQuit:
			return wizard.FormRecord{}, ErrAborted
		}
	}
}

func (s *Shell) submit(ctx context.Context, w *wizard.Wizard) error {
	if err := s.info(ctx, "Submitting..."); err != nil {
		return err
	}
	err := w.Submit(ctx)
	switch {
	case err == nil:
		return s.info(ctx, "Form submitted successfully!")
	case errors.Is(err, wizard.ErrValidation):
		return s.reportErrors(ctx, w.Snapshot(), wizard.Fields())
	case errors.Is(err, wizard.ErrSubmitFailed):
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		snap := w.Snapshot()
		s.logger.Debug("submission failed", zap.Error(err))
		if err := s.warn(ctx, "Submission failed: "+snap.SubmitError); err != nil {
			return err
		}
		for _, msg := range snap.FormErrors {
			if err := s.warn(ctx, msg); err != nil {
				return err
			}
		}
		return s.reportErrors(ctx, snap, wizard.Fields())
	default:
		return err
	}
}

func (s *Shell) pickAction(ctx context.Context, snap wizard.Snapshot) (choice, error) {
	var choices []choice
	if snap.IsReview() {
		choices = append(choices, choice{label: "Submit", action: actionSubmit})
		choices = append(choices, choice{label: "Back", action: actionBack})
		for _, st := range wizard.Steps()[:wizard.ReviewStep-1] {
			choices = append(choices, choice{label: "Edit " + st.Label, action: actionEdit, step: st.Index})
		}
	} else {
		choices = append(choices, choice{label: "Next", action: actionNext})
		if snap.Step > 1 {
			choices = append(choices, choice{label: "Back", action: actionBack})
		}
	}
	choices = append(choices, choice{label: "Quit", action: actionQuit})

	labels := make([]string, len(choices))
	for i, c := range choices {
		labels[i] = c.label
	}
	idx, err := s.driver.Select(ctx, SelectConfig{Message: "Continue", Options: labels})
	if err != nil {
		return choice{}, err
	}
	if idx < 0 || idx >= len(choices) {
		return choice{}, fmt.Errorf("tui: action index %d out of range", idx)
	}
	return choices[idx], nil
}

func (s *Shell) promptStep(ctx context.Context, w *wizard.Wizard, step wizard.Step) error {
	for _, f := range step.Fields {
		if err := s.promptField(ctx, w, f); err != nil {
			return err
		}
	}
	return nil
}

// promptField asks for one value, showing the field's current error first.
// Values the store cannot hold (a non-numeric age) are re-prompted.
func (s *Shell) promptField(ctx context.Context, w *wizard.Wizard, f wizard.Field) error {
	for {
		snap := w.Snapshot()
		if msg, ok := snap.Errors[f]; ok {
			if err := s.warn(ctx, msg); err != nil {
				return err
			}
		}
		value, err := s.ask(ctx, f, snap.Record)
		if err != nil {
			return err
		}
		err = w.SetField(f, value)
		if err == nil {
			return nil
		}
		if !errors.Is(err, wizard.ErrInvalidValue) {
			return err
		}
		if err := s.warn(ctx, invalidEntry(f)); err != nil {
			return err
		}
	}
}

func (s *Shell) ask(ctx context.Context, f wizard.Field, record wizard.FormRecord) (any, error) {
	label := f.Label()
	current, _ := record.Value(f)

	switch f {
	case wizard.FieldNewsletter, wizard.FieldAcceptTerms:
		on, _ := current.(bool)
		return s.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: on})

	case wizard.FieldGender:
		genders := wizard.Genders()
		options := make([]string, len(genders))
		def := -1
		for i, g := range genders {
			options[i] = g.Label()
			if g == record.Gender {
				def = i
			}
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: label, Options: options, DefaultIndex: def})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(genders) {
			return "", nil
		}
		return string(genders[idx]), nil

	case wizard.FieldInterests:
		catalog := wizard.Catalog()
		options := make([]string, len(catalog))
		var defaults []int
		selected := make(map[string]struct{}, len(record.Interests))
		for _, id := range record.Interests {
			selected[id] = struct{}{}
		}
		for i, item := range catalog {
			options[i] = item.Label
			if _, ok := selected[item.ID]; ok {
				defaults = append(defaults, i)
			}
		}
		picked, err := s.driver.MultiSelect(ctx, SelectConfig{
			Message:  label,
			Options:  options,
			Defaults: defaults,
			Help:     "Select at least 2",
			PageSize: len(options),
		})
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(catalog) {
				ids = append(ids, catalog[idx].ID)
			}
		}
		return ids, nil

	case wizard.FieldAge:
		def := ""
		if record.Age != nil {
			def = strconv.Itoa(*record.Age)
		}
		return s.driver.Input(ctx, InputConfig{Message: label, Default: def})

	case wizard.FieldMessage:
		text, _ := current.(string)
		return s.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: text})

	default:
		text, _ := current.(string)
		return s.driver.Input(ctx, InputConfig{Message: label, Default: text})
	}
}

func invalidEntry(f wizard.Field) string {
	if f == wizard.FieldAge {
		return "Age must be a whole number"
	}
	return "Invalid value for " + f.Label()
}

func (s *Shell) reportErrors(ctx context.Context, snap wizard.Snapshot, fields []wizard.Field) error {
	for _, f := range fields {
		if msg, ok := snap.Errors[f]; ok {
			if err := s.warn(ctx, f.Label()+": "+msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Shell) writeRecord(record wizard.FormRecord) error {
	data, err := Encode(record, s.outputFormat)
	if err != nil {
		return err
	}
	if _, err := s.out.Write(data); err != nil {
		return fmt.Errorf("tui: write output: %w", err)
	}
	return nil
}

func (s *Shell) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}

func (s *Shell) warn(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, s.theme.ErrorPrefix+msg)
}
