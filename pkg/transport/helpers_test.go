package transport_test

import "github.com/goliatone/go-formwizard/pkg/wizard"

func validRecord() wizard.FormRecord {
	age := 41
	r := wizard.NewRecord()
	r.FirstName, r.LastName = "Alan", "Turing"
	r.Email = "alan@example.com"
	r.Age = &age
	r.Gender = wizard.GenderMale
	r.Interests = []string{"technology", "sports"}
	r.Phone = "0161 496 0000"
	r.Address = "Hollymeade, Wilmslow"
	r.City = "Manchester"
	r.Country = "UK"
	r.AcceptTerms = true
	return r
}
