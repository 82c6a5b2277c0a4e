package wizard

import (
	"strconv"
	"strings"
)

const notProvided = "Not provided"

// ReviewItem is one labelled value of the review screen.
type ReviewItem struct {
	Field Field    `json:"field,omitempty"`
	Label string   `json:"label"`
	Value string   `json:"value,omitempty"`
	List  []string `json:"list,omitempty"`
}

// ReviewSection groups items under a heading and points back at the step that
// collects them.
type ReviewSection struct {
	Title string       `json:"title"`
	Step  int          `json:"step"`
	Items []ReviewItem `json:"items"`
}

// Review builds the summary shown on the review step.
func Review(r FormRecord) []ReviewSection {
	age := ""
	if r.Age != nil {
		age = strconv.Itoa(*r.Age)
	}
	newsletter := "Not subscribed"
	if r.Newsletter {
		newsletter = "Subscribed"
	}

	interests := ReviewItem{Field: FieldInterests, Label: "Interests"}
	for _, id := range r.Interests {
		interests.List = append(interests.List, InterestLabel(id))
	}
	if len(interests.List) == 0 {
		interests.Value = "None selected"
	}

	contact := []ReviewItem{
		{Field: FieldPhone, Label: "Phone", Value: orNotProvided(r.Phone)},
		{Field: FieldAddress, Label: "Address", Value: orNotProvided(r.Address)},
		{Field: FieldCity, Label: "City", Value: orNotProvided(r.City)},
		{Field: FieldCountry, Label: "Country", Value: orNotProvided(r.Country)},
	}
	optional := []struct {
		field Field
		label string
		value string
	}{
		{FieldMessage, "Message", r.Message},
		{FieldWebsite, "Website", r.Website},
		{FieldLinkedIn, "LinkedIn", r.LinkedIn},
		{FieldTwitter, "Twitter", r.Twitter},
	}
	for _, item := range optional {
		if item.value != "" {
			contact = append(contact, ReviewItem{Field: item.field, Label: item.label, Value: item.value})
		}
	}

	return []ReviewSection{
		{
			Title: "Personal Information",
			Step:  1,
			Items: []ReviewItem{
				{Label: "Name", Value: strings.TrimSpace(r.FirstName + " " + r.LastName)},
				{Field: FieldEmail, Label: "Email", Value: r.Email},
				{Field: FieldAge, Label: "Age", Value: age},
				{Field: FieldGender, Label: "Gender", Value: r.Gender.Label()},
			},
		},
		{
			Title: "Preferences",
			Step:  2,
			Items: []ReviewItem{
				{Field: FieldNewsletter, Label: "Newsletter", Value: newsletter},
				interests,
			},
		},
		{
			Title: "Contact Information",
			Step:  3,
			Items: contact,
		},
	}
}

func orNotProvided(v string) string {
	if v == "" {
		return notProvided
	}
	return v
}
