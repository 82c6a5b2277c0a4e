package web

import (
	"fmt"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Input kinds understood by partials/field.html.
const (
	kindText       = "text"
	kindEmail      = "email"
	kindTel        = "tel"
	kindNumber     = "number"
	kindURL        = "url"
	kindTextArea   = "textarea"
	kindSelect     = "select"
	kindCheckbox   = "checkbox"
	kindCheckboxes = "checkboxes"
)

var fieldKinds = map[wizard.Field]string{
	wizard.FieldEmail:       kindEmail,
	wizard.FieldAge:         kindNumber,
	wizard.FieldGender:      kindSelect,
	wizard.FieldNewsletter:  kindCheckbox,
	wizard.FieldInterests:   kindCheckboxes,
	wizard.FieldPhone:       kindTel,
	wizard.FieldMessage:     kindTextArea,
	wizard.FieldWebsite:     kindURL,
	wizard.FieldLinkedIn:    kindURL,
	wizard.FieldAcceptTerms: kindCheckbox,
}

func fieldKind(f wizard.Field) string {
	if kind, ok := fieldKinds[f]; ok {
		return kind
	}
	return kindText
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

type fieldView struct {
	Name     string
	Label    string
	Kind     string
	Value    string
	Checked  bool
	Required bool
	Error    string
	Options  []optionView
}

type stepView struct {
	Index  int
	Label  string
	Active bool
	Done   bool
}

type reviewItemView struct {
	Label string
	Value string
	List  []string
	Free  bool
}

type reviewSectionView struct {
	Title string
	Step  int
	Items []reviewItemView
}

func buildSteps(current int) []stepView {
	out := make([]stepView, 0, wizard.StepCount)
	for _, s := range wizard.Steps() {
		out = append(out, stepView{
			Index:  s.Index,
			Label:  s.Label,
			Active: s.Index == current,
			Done:   s.Index < current,
		})
	}
	return out
}

func buildFields(step wizard.Step, snap wizard.Snapshot) []fieldView {
	required := make(map[wizard.Field]bool, len(step.Required))
	for _, f := range step.Required {
		required[f] = true
	}

	out := make([]fieldView, 0, len(step.Fields))
	for _, f := range step.Fields {
		view := fieldView{
			Name:     string(f),
			Label:    f.Label(),
			Kind:     fieldKind(f),
			Required: required[f],
			Error:    snap.Errors[f],
		}
		value, _ := snap.Record.Value(f)
		switch v := value.(type) {
		case bool:
			view.Checked = v
		case string:
			view.Value = v
		case wizard.Gender:
			view.Value = string(v)
			for _, g := range wizard.Genders() {
				view.Options = append(view.Options, optionView{Value: string(g), Label: g.Label(), Selected: g == v})
			}
		case []string:
			selected := make(map[string]bool, len(v))
			for _, id := range v {
				selected[id] = true
			}
			for _, interest := range wizard.Catalog() {
				view.Options = append(view.Options, optionView{Value: interest.ID, Label: interest.Label, Selected: selected[interest.ID]})
			}
		case nil:
		default:
			view.Value = fmt.Sprint(v)
		}
		out = append(out, view)
	}
	return out
}

// free-text items are passed through the sanitize filter in the template.
var freeText = map[wizard.Field]bool{
	wizard.FieldMessage: true,
	wizard.FieldTwitter: true,
}

func buildReview(record wizard.FormRecord) []reviewSectionView {
	sections := wizard.Review(record)
	out := make([]reviewSectionView, 0, len(sections))
	for _, section := range sections {
		view := reviewSectionView{Title: section.Title, Step: section.Step}
		for _, item := range section.Items {
			view.Items = append(view.Items, reviewItemView{
				Label: item.Label,
				Value: item.Value,
				List:  item.List,
				Free:  freeText[item.Field],
			})
		}
		out = append(out, view)
	}
	return out
}
