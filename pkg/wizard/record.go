package wizard

// Field names a FormRecord attribute. Values match the JSON keys used on the
// wire and by the shells.
type Field string

const (
	FieldFirstName   Field = "firstName"
	FieldLastName    Field = "lastName"
	FieldEmail       Field = "email"
	FieldAge         Field = "age"
	FieldGender      Field = "gender"
	FieldNewsletter  Field = "newsletter"
	FieldInterests   Field = "interests"
	FieldPhone       Field = "phone"
	FieldAddress     Field = "address"
	FieldCity        Field = "city"
	FieldCountry     Field = "country"
	FieldMessage     Field = "message"
	FieldWebsite     Field = "website"
	FieldLinkedIn    Field = "linkedin"
	FieldTwitter     Field = "twitter"
	FieldAcceptTerms Field = "acceptTerms"
)

// declaration order; validation and error reporting follow it.
var fieldOrder = []Field{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldAge,
	FieldGender,
	FieldNewsletter,
	FieldInterests,
	FieldPhone,
	FieldAddress,
	FieldCity,
	FieldCountry,
	FieldMessage,
	FieldWebsite,
	FieldLinkedIn,
	FieldTwitter,
	FieldAcceptTerms,
}

// Fields returns every record field in declaration order.
func Fields() []Field {
	return append([]Field(nil), fieldOrder...)
}

// ParseField resolves a field name, reporting false for unknown names.
func ParseField(name string) (Field, bool) {
	for _, f := range fieldOrder {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

var fieldLabels = map[Field]string{
	FieldFirstName:   "First Name",
	FieldLastName:    "Last Name",
	FieldEmail:       "Email Address",
	FieldAge:         "Age",
	FieldGender:      "Gender",
	FieldNewsletter:  "Subscribe to our newsletter",
	FieldInterests:   "Interests",
	FieldPhone:       "Phone Number",
	FieldAddress:     "Address",
	FieldCity:        "City",
	FieldCountry:     "Country",
	FieldMessage:     "Additional Message (Optional)",
	FieldWebsite:     "Website URL",
	FieldLinkedIn:    "LinkedIn Profile",
	FieldTwitter:     "Twitter Handle",
	FieldAcceptTerms: "I accept the terms and conditions",
}

// Label is the human-readable field caption shells display.
func (f Field) Label() string {
	if label, ok := fieldLabels[f]; ok {
		return label
	}
	return string(f)
}

// Gender is the enumerated gender choice. The empty value means "not
// selected".
type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

var genders = []Gender{GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay}

// Genders lists the accepted values in display order.
func Genders() []Gender {
	return append([]Gender(nil), genders...)
}

// Label renders the gender for display.
func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	case GenderOther:
		return "Other"
	case GenderPreferNotToSay:
		return "Prefer not to say"
	default:
		return string(g)
	}
}

// Interest is one entry of the fixed interest catalog.
type Interest struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var interestCatalog = []Interest{
	{ID: "technology", Label: "Technology"},
	{ID: "sports", Label: "Sports"},
	{ID: "music", Label: "Music"},
	{ID: "travel", Label: "Travel"},
	{ID: "cooking", Label: "Cooking"},
	{ID: "reading", Label: "Reading"},
	{ID: "gaming", Label: "Gaming"},
	{ID: "art", Label: "Art & Design"},
}

// Catalog returns the interest catalog in display order.
func Catalog() []Interest {
	return append([]Interest(nil), interestCatalog...)
}

// InterestLabel returns the catalog label for id, or id itself when unknown.
func InterestLabel(id string) string {
	for _, interest := range interestCatalog {
		if interest.ID == id {
			return interest.Label
		}
	}
	return id
}

func catalogIndex(id string) int {
	for i, interest := range interestCatalog {
		if interest.ID == id {
			return i
		}
	}
	return -1
}

// FormRecord holds every value the wizard collects.
type FormRecord struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Age       *int   `json:"age,omitempty"`
	Gender    Gender `json:"gender,omitempty"`

	Newsletter bool     `json:"newsletter"`
	Interests  []string `json:"interests"`

	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Message  string `json:"message,omitempty"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`

	AcceptTerms bool `json:"acceptTerms"`
}

// NewRecord returns the default record a fresh session starts from.
func NewRecord() FormRecord {
	return FormRecord{Interests: []string{}}
}

// Clone returns a deep copy safe to hand out of the session.
func (r FormRecord) Clone() FormRecord {
	out := r
	if r.Age != nil {
		age := *r.Age
		out.Age = &age
	}
	out.Interests = append([]string{}, r.Interests...)
	return out
}

// Value returns the stored value of f using its natural Go type.
func (r FormRecord) Value(f Field) (any, bool) {
	switch f {
	case FieldFirstName:
		return r.FirstName, true
	case FieldLastName:
		return r.LastName, true
	case FieldEmail:
		return r.Email, true
	case FieldAge:
		if r.Age == nil {
			return nil, true
		}
		return *r.Age, true
	case FieldGender:
		return r.Gender, true
	case FieldNewsletter:
		return r.Newsletter, true
	case FieldInterests:
		return append([]string{}, r.Interests...), true
	case FieldPhone:
		return r.Phone, true
	case FieldAddress:
		return r.Address, true
	case FieldCity:
		return r.City, true
	case FieldCountry:
		return r.Country, true
	case FieldMessage:
		return r.Message, true
	case FieldWebsite:
		return r.Website, true
	case FieldLinkedIn:
		return r.LinkedIn, true
	case FieldTwitter:
		return r.Twitter, true
	case FieldAcceptTerms:
		return r.AcceptTerms, true
	default:
		return nil, false
	}
}

// stringField returns a pointer to the string backing f, or nil when f is not
// a plain string field.
func (r *FormRecord) stringField(f Field) *string {
	switch f {
	case FieldFirstName:
		return &r.FirstName
	case FieldLastName:
		return &r.LastName
	case FieldEmail:
		return &r.Email
	case FieldPhone:
		return &r.Phone
	case FieldAddress:
		return &r.Address
	case FieldCity:
		return &r.City
	case FieldCountry:
		return &r.Country
	case FieldMessage:
		return &r.Message
	case FieldWebsite:
		return &r.Website
	case FieldLinkedIn:
		return &r.LinkedIn
	case FieldTwitter:
		return &r.Twitter
	default:
		return nil
	}
}

func (r *FormRecord) boolField(f Field) *bool {
	switch f {
	case FieldNewsletter:
		return &r.Newsletter
	case FieldAcceptTerms:
		return &r.AcceptTerms
	default:
		return nil
	}
}
