package schema

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// RecordName is the component name of the FormRecord schema.
const RecordName = "FormRecord"

// RecordRef is the JSON reference to the FormRecord component.
const RecordRef = "#/components/schemas/" + RecordName

// RecordSchema returns a fresh object schema describing wizard.FormRecord.
func RecordSchema() *openapi3.Schema {
	genders := make([]any, 0, len(wizard.Genders()))
	for _, g := range wizard.Genders() {
		genders = append(genders, string(g))
	}
	interestIDs := make([]any, 0, len(wizard.Catalog()))
	for _, item := range wizard.Catalog() {
		interestIDs = append(interestIDs, item.ID)
	}

	s := openapi3.NewObjectSchema().
		WithProperty(string(wizard.FieldFirstName), minLength(wizard.FieldFirstName, wizard.MinNameLength)).
		WithProperty(string(wizard.FieldLastName), minLength(wizard.FieldLastName, wizard.MinNameLength)).
		WithProperty(string(wizard.FieldEmail), labelled(wizard.FieldEmail, openapi3.NewStringSchema().WithFormat("email"))).
		WithProperty(string(wizard.FieldAge), labelled(wizard.FieldAge, openapi3.NewIntegerSchema().WithMin(wizard.MinAge).WithMax(wizard.MaxAge))).
		WithProperty(string(wizard.FieldGender), labelled(wizard.FieldGender, openapi3.NewStringSchema().WithEnum(genders...))).
		WithProperty(string(wizard.FieldNewsletter), labelled(wizard.FieldNewsletter, openapi3.NewBoolSchema())).
		WithProperty(string(wizard.FieldInterests), labelled(wizard.FieldInterests, openapi3.NewArraySchema().
			WithItems(openapi3.NewStringSchema().WithEnum(interestIDs...)).
			WithMinItems(wizard.MinInterests).
			WithUniqueItems(true))).
		WithProperty(string(wizard.FieldPhone), minLength(wizard.FieldPhone, wizard.MinPhoneLength)).
		WithProperty(string(wizard.FieldAddress), minLength(wizard.FieldAddress, wizard.MinAddressLength)).
		WithProperty(string(wizard.FieldCity), minLength(wizard.FieldCity, wizard.MinCityLength)).
		WithProperty(string(wizard.FieldCountry), minLength(wizard.FieldCountry, wizard.MinCountryLength)).
		WithProperty(string(wizard.FieldMessage), labelled(wizard.FieldMessage, openapi3.NewStringSchema())).
		WithProperty(string(wizard.FieldWebsite), labelled(wizard.FieldWebsite, openapi3.NewStringSchema().WithFormat("uri"))).
		WithProperty(string(wizard.FieldLinkedIn), labelled(wizard.FieldLinkedIn, openapi3.NewStringSchema().WithFormat("uri"))).
		WithProperty(string(wizard.FieldTwitter), labelled(wizard.FieldTwitter, openapi3.NewStringSchema())).
		WithProperty(string(wizard.FieldAcceptTerms), labelled(wizard.FieldAcceptTerms, openapi3.NewBoolSchema().WithEnum(true)))

	s.Title = RecordName
	s.Description = "Data collected by the registration wizard."
	s.Required = requiredFields()
	return s
}

// requiredFields lists every constrained field except the optional URLs,
// which accept an absent value.
func requiredFields() []string {
	var out []string
	for _, f := range wizard.Fields() {
		if !wizard.Constrained(f) || f == wizard.FieldWebsite || f == wizard.FieldLinkedIn {
			continue
		}
		out = append(out, string(f))
	}
	return out
}

func minLength(f wizard.Field, n int) *openapi3.Schema {
	return labelled(f, openapi3.NewStringSchema().WithMinLength(int64(n)))
}

func labelled(f wizard.Field, s *openapi3.Schema) *openapi3.Schema {
	s.Title = f.Label()
	return s
}
