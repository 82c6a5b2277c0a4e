package wizard

// Step describes one page of the wizard. Fields lists everything the step
// displays in order; Required is the subset that must validate before the
// wizard moves past it.
type Step struct {
	Index    int     `json:"index"`
	Label    string  `json:"label"`
	Title    string  `json:"title"`
	Fields   []Field `json:"fields"`
	Required []Field `json:"required"`
}

const (
	// StepCount is the number of steps in the wizard.
	StepCount = 4
	// ReviewStep is the terminal step from which submission happens.
	ReviewStep = StepCount
)

var steps = [StepCount]Step{
	{
		Index:    1,
		Label:    "Personal",
		Title:    "Personal Information",
		Fields:   []Field{FieldFirstName, FieldLastName, FieldEmail, FieldAge, FieldGender},
		Required: []Field{FieldFirstName, FieldLastName, FieldEmail, FieldAge, FieldGender},
	},
	{
		Index:    2,
		Label:    "Preferences",
		Title:    "Your Preferences",
		Fields:   []Field{FieldNewsletter, FieldInterests},
		Required: []Field{FieldInterests},
	},
	{
		Index:    3,
		Label:    "Contact",
		Title:    "Contact Information",
		Fields:   []Field{FieldPhone, FieldAddress, FieldCity, FieldCountry, FieldMessage, FieldWebsite, FieldLinkedIn, FieldTwitter},
		Required: []Field{FieldPhone, FieldAddress, FieldCity, FieldCountry},
	},
	{
		Index:    4,
		Label:    "Review",
		Title:    "Review & Submit",
		Fields:   []Field{FieldAcceptTerms},
		Required: []Field{FieldAcceptTerms},
	},
}

// Steps returns a copy of the step table.
func Steps() []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		out[i] = s.clone()
	}
	return out
}

// StepAt returns the step with the given 1-based index.
func StepAt(index int) (Step, bool) {
	if index < 1 || index > StepCount {
		return Step{}, false
	}
	return steps[index-1].clone(), true
}

// StepLabels lists step labels in order, as used by progress indicators.
func StepLabels() []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.Label
	}
	return out
}

func (s Step) clone() Step {
	s.Fields = append([]Field(nil), s.Fields...)
	s.Required = append([]Field(nil), s.Required...)
	return s
}

// Optional returns the displayed fields that do not gate navigation.
func (s Step) Optional() []Field {
	var out []Field
	for _, f := range s.Fields {
		if !containsField(s.Required, f) {
			out = append(out, f)
		}
	}
	return out
}

func containsField(list []Field, f Field) bool {
	for _, candidate := range list {
		if candidate == f {
			return true
		}
	}
	return false
}
