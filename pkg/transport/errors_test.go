package transport_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formwizard/pkg/transport"
)

func TestMapErrorPayload(t *testing.T) {
	payload := map[string][]string{
		"/body/email":           {"Email already registered"},
		"$.data.interests[0]":   {"Unknown interest"},
		"request.payload.phone": {" Phone unreachable ", "Phone unreachable"},
		"first_name":            {"Name is reserved"},
		"record/linkedin":       {"Profile not found"},
		"non_field_errors":      {"Try again later"},
		"body/nickname":         {"Should fall back to form errors"},
		"":                      {"Unscoped form error"},
		"city":                  {"  "},
	}

	mapped := transport.MapErrorPayload(payload)

	wantFields := map[string][]string{
		"email":     {"Email already registered"},
		"interests": {"Unknown interest"},
		"phone":     {"Phone unreachable"},
		"firstName": {"Name is reserved"},
		"linkedin":  {"Profile not found"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	wantForm := []string{"Try again later", "Should fall back to form errors", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayloadEmpty(t *testing.T) {
	mapped := transport.MapErrorPayload(nil)
	if mapped.Fields != nil || mapped.Form != nil {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := transport.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	if diff := cmp.Diff([]string{"First", "Second", "third"}, merged); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldErrors(t *testing.T) {
	err := error(&transport.FieldErrors{
		Status: 422,
		ErrorMapping: transport.ErrorMapping{
			Fields: map[string][]string{"email": {"taken"}},
		},
	})
	if !errors.Is(err, transport.ErrRejected) {
		t.Fatalf("FieldErrors must unwrap to ErrRejected")
	}
	if got := err.Error(); got != "submission rejected: 1 field(s) need attention" {
		t.Fatalf("message = %q", got)
	}

	withForm := &transport.FieldErrors{ErrorMapping: transport.ErrorMapping{Form: []string{"Closed", "Come back later"}}}
	if got := withForm.Error(); got != "Closed; Come back later" {
		t.Fatalf("message = %q", got)
	}
}
