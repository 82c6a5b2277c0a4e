package wizard

import (
	"github.com/goliatone/go-formwizard/pkg/validation"
)

// Limits enforced by the field rules.
const (
	MinNameLength    = 2
	MinPhoneLength   = 10
	MinAddressLength = 5
	MinCityLength    = 2
	MinCountryLength = 2
	MinInterests     = 2
	MinAge           = 18
	MaxAge           = 120
)

var ageMessages = validation.RangeMessages{
	Required: "Age is required",
	TooSmall: "Must be at least 18 years old",
	TooLarge: "Age must be realistic",
}

var invalidGenderMessage = "Invalid gender, expected one of: " + validation.Enum(genders)

type rule func(FormRecord) error

// Fields without an entry (newsletter, message, twitter) are unconstrained.
var rules = map[Field]rule{
	FieldFirstName: func(r FormRecord) error {
		return validation.MinLength(r.FirstName, MinNameLength, "First name must be at least 2 characters")
	},
	FieldLastName: func(r FormRecord) error {
		return validation.MinLength(r.LastName, MinNameLength, "Last name must be at least 2 characters")
	},
	FieldEmail: func(r FormRecord) error {
		return validation.Email(r.Email, "Please enter a valid email address")
	},
	FieldAge: func(r FormRecord) error {
		return validation.IntRange(r.Age, MinAge, MaxAge, ageMessages)
	},
	FieldGender: func(r FormRecord) error {
		return validation.OneOf(r.Gender, genders, "Please select a gender", invalidGenderMessage)
	},
	FieldInterests: func(r FormRecord) error {
		return validation.MinItems(r.Interests, MinInterests, "Please select at least 2 interests")
	},
	FieldPhone: func(r FormRecord) error {
		return validation.MinLength(r.Phone, MinPhoneLength, "Phone number must be at least 10 digits")
	},
	FieldAddress: func(r FormRecord) error {
		return validation.MinLength(r.Address, MinAddressLength, "Address must be at least 5 characters")
	},
	FieldCity: func(r FormRecord) error {
		return validation.MinLength(r.City, MinCityLength, "City must be at least 2 characters")
	},
	FieldCountry: func(r FormRecord) error {
		return validation.MinLength(r.Country, MinCountryLength, "Country must be at least 2 characters")
	},
	FieldWebsite: func(r FormRecord) error {
		return validation.OptionalURL(r.Website, "Please enter a valid URL")
	},
	FieldLinkedIn: func(r FormRecord) error {
		return validation.OptionalURL(r.LinkedIn, "Please enter a valid LinkedIn URL")
	},
	FieldAcceptTerms: func(r FormRecord) error {
		return validation.MustBeTrue(r.AcceptTerms, "You must accept the terms and conditions")
	},
}

// Check runs the rule bound to f against record. Unconstrained fields always
// pass.
func Check(record FormRecord, f Field) error {
	if fn, ok := rules[f]; ok {
		return fn(record)
	}
	return nil
}

// Constrained reports whether f carries a validation rule.
func Constrained(f Field) bool {
	_, ok := rules[f]
	return ok
}
