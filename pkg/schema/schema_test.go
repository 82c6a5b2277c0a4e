package schema

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func validRecord() wizard.FormRecord {
	age := 30
	r := wizard.NewRecord()
	r.FirstName, r.LastName = "Grace", "Hopper"
	r.Email = "grace@example.com"
	r.Age = &age
	r.Gender = wizard.GenderFemale
	r.Interests = []string{"technology", "reading"}
	r.Phone = "555-010-0199"
	r.Address = "1 Navy Yard"
	r.City = "Arlington"
	r.Country = "US"
	r.AcceptTerms = true
	return r
}

func TestRecordSchemaRequired(t *testing.T) {
	got := append([]string(nil), RecordSchema().Required...)
	sort.Strings(got)
	want := []string{
		"acceptTerms", "address", "age", "city", "country", "email",
		"firstName", "gender", "interests", "lastName", "phone",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestValidatePayloadAcceptsValidRecord(t *testing.T) {
	if err := ValidatePayload(validRecord()); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}
	r := validRecord()
	r.Website = "https://example.com"
	r.Message = "hello"
	if err := ValidatePayload(r); err != nil {
		t.Fatalf("valid record with optional fields rejected: %v", err)
	}
}

func TestValidatePayloadReportsEveryIssue(t *testing.T) {
	r := validRecord()
	age := 17
	r.Age = &age
	r.Gender = ""
	r.Interests = []string{"music"}
	r.AcceptTerms = false

	err := ValidatePayload(r)
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("err = %v", err)
	}
	var payloadErr *PayloadError
	if !errors.As(err, &payloadErr) {
		t.Fatalf("expected *PayloadError, got %T", err)
	}

	fields := payloadErr.Fields()
	got := make([]string, 0, len(fields))
	for name := range fields {
		got = append(got, name)
	}
	sort.Strings(got)
	want := []string{"acceptTerms", "age", "gender", "interests"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestValidatePayloadRawJSON(t *testing.T) {
	err := ValidatePayload([]byte(`{"firstName":"A"}`))
	var payloadErr *PayloadError
	if !errors.As(err, &payloadErr) {
		t.Fatalf("expected *PayloadError, got %v", err)
	}
	if _, ok := payloadErr.Fields()["firstName"]; !ok {
		t.Fatalf("expected a firstName issue, got %v", payloadErr.Fields())
	}

	if err := ValidatePayload([]byte(`{`)); err == nil || errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("malformed json should fail decoding, got %v", err)
	}
}

func TestDocument(t *testing.T) {
	doc, err := Document(context.Background(), WithTitle("Signup"), WithServer("http://localhost:8080"))
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if doc.Info.Title != "Signup" {
		t.Fatalf("title = %q", doc.Info.Title)
	}
	item := doc.Paths.Find(SubmissionPath)
	if item == nil || item.Post == nil {
		t.Fatalf("missing POST %s", SubmissionPath)
	}
	if item.Post.OperationID != SubmitOperationID {
		t.Fatalf("operationId = %q", item.Post.OperationID)
	}
	if doc.Components.Schemas[RecordName] == nil {
		t.Fatalf("missing %s component", RecordName)
	}
	if len(doc.Servers) != 1 {
		t.Fatalf("servers = %v", doc.Servers)
	}
}

func TestMarshal(t *testing.T) {
	doc, err := Document(context.Background())
	if err != nil {
		t.Fatalf("document: %v", err)
	}

	js, err := Marshal(doc, FormatJSON)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(string(js), `"operationId": "submitForm"`) {
		t.Fatalf("json output missing operation:\n%s", js)
	}

	yml, err := Marshal(doc, FormatYAML)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(string(yml), "operationId: submitForm") {
		t.Fatalf("yaml output is not block style:\n%s", yml)
	}

	if _, err := Marshal(doc, "toml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}
