package validation_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/validation"
)

func intPtr(v int) *int { return &v }

func ruleOf(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		return ""
	}
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validation.Error, got %T", err)
	}
	return verr.Rule
}

func TestMinLength_CountsCodePoints(t *testing.T) {
	cases := []struct {
		value string
		min   int
		want  string
	}{
		{"Al", 2, ""},
		{"A", 2, validation.RuleMinLength},
		{"", 2, validation.RuleMinLength},
		{"Zoë", 3, ""},
		{"日本", 2, ""},
		{"  ", 2, ""},
	}
	for _, tc := range cases {
		if got := ruleOf(t, validation.MinLength(tc.value, tc.min, "too short")); got != tc.want {
			t.Fatalf("MinLength(%q, %d) rule = %q, want %q", tc.value, tc.min, got, tc.want)
		}
	}
}

func TestIntRange_Boundaries(t *testing.T) {
	msgs := validation.RangeMessages{Required: "required", TooSmall: "Must be at least 18 years old", TooLarge: "Age must be realistic"}

	cases := []struct {
		name  string
		value *int
		rule  string
		msg   string
	}{
		{"unset", nil, validation.RuleRequired, "required"},
		{"below", intPtr(17), validation.RuleMin, "Must be at least 18 years old"},
		{"lower bound", intPtr(18), "", ""},
		{"upper bound", intPtr(120), "", ""},
		{"above", intPtr(121), validation.RuleMax, "Age must be realistic"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validation.IntRange(tc.value, 18, 120, msgs)
			if got := ruleOf(t, err); got != tc.rule {
				t.Fatalf("rule = %q, want %q", got, tc.rule)
			}
			if err != nil && err.Error() != tc.msg {
				t.Fatalf("message = %q, want %q", err.Error(), tc.msg)
			}
		})
	}
}

func TestOneOf(t *testing.T) {
	allowed := []string{"male", "female"}
	if got := ruleOf(t, validation.OneOf("", allowed, "pick", "bad")); got != validation.RuleRequired {
		t.Fatalf("empty value rule = %q", got)
	}
	if got := ruleOf(t, validation.OneOf("robot", allowed, "pick", "bad")); got != validation.RuleEnum {
		t.Fatalf("unknown value rule = %q", got)
	}
	if err := validation.OneOf("female", allowed, "pick", "bad"); err != nil {
		t.Fatalf("member rejected: %v", err)
	}
}

func TestEmail(t *testing.T) {
	valid := []string{
		"ada@example.com",
		"first.last+tag@sub.example.co",
		"o'neil_x@mail.example.org",
		"a-b@x-y.io",
	}
	invalid := []string{
		"",
		"x",
		"ada@",
		"@example.com",
		".ada@example.com",
		"ada.@example.com",
		"ada..lovelace@example.com",
		"ada@example",
		"ada@example.c",
		"ada@-example.com",
		"ada lovelace@example.com",
	}
	for _, v := range valid {
		if !validation.IsEmail(v) {
			t.Fatalf("expected %q to be valid", v)
		}
	}
	for _, v := range invalid {
		if err := validation.Email(v, "Please enter a valid email address"); err == nil {
			t.Fatalf("expected %q to be rejected", v)
		}
	}
}

func TestMinItemsAndMustBeTrue(t *testing.T) {
	if err := validation.MinItems([]string{"music", "travel"}, 2, "pick two"); err != nil {
		t.Fatalf("two items rejected: %v", err)
	}
	if got := ruleOf(t, validation.MinItems([]string{"music"}, 2, "pick two")); got != validation.RuleMinItems {
		t.Fatalf("one item rule = %q", got)
	}
	if got := ruleOf(t, validation.MustBeTrue(false, "accept")); got != validation.RuleAccepted {
		t.Fatalf("false rule = %q", got)
	}
	if err := validation.MustBeTrue(true, "accept"); err != nil {
		t.Fatalf("true rejected: %v", err)
	}
}

func TestParseOptionalURL(t *testing.T) {
	cases := []struct {
		raw  string
		kind validation.URLKind
	}{
		{"", validation.URLUnset},
		{"https://example.com", validation.URLValid},
		{"https://www.linkedin.com/in/ada", validation.URLValid},
		{"mailto:ada@example.com", validation.URLValid},
		{"file:///tmp/cv.pdf", validation.URLValid},
		{"example.com", validation.URLInvalid},
		{"www.example.com/path", validation.URLInvalid},
		{"http://", validation.URLInvalid},
		{"http://exa mple.com", validation.URLInvalid},
		{"://missing", validation.URLInvalid},
	}
	for _, tc := range cases {
		got := validation.ParseOptionalURL(tc.raw)
		if got.Kind != tc.kind {
			t.Fatalf("ParseOptionalURL(%q) = %s, want %s (reason %q)", tc.raw, got.Kind, tc.kind, got.Reason)
		}
		switch got.Kind {
		case validation.URLValid:
			if got.URL == nil || got.Reason != "" {
				t.Fatalf("valid result for %q missing url or carries reason: %+v", tc.raw, got)
			}
		case validation.URLInvalid:
			if got.URL != nil || got.Reason == "" {
				t.Fatalf("invalid result for %q should carry only a reason: %+v", tc.raw, got)
			}
		}
	}
}

func TestOptionalURLMessage(t *testing.T) {
	err := validation.OptionalURL("not a url", "Please enter a valid URL")
	if err == nil {
		t.Fatalf("expected failure")
	}
	if diff := cmp.Diff(&validation.Error{Rule: validation.RuleURL, Message: "Please enter a valid URL"}, err); diff != "" {
		t.Fatalf("error mismatch (-want +got):\n%s", diff)
	}
	if err := validation.OptionalURL("", "Please enter a valid URL"); err != nil {
		t.Fatalf("empty value rejected: %v", err)
	}
}

func TestEnum(t *testing.T) {
	type gender string
	got := validation.Enum([]gender{"male", "female", "other"})
	if got != "male, female, other" {
		t.Fatalf("Enum = %q", got)
	}
}
