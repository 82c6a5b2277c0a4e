package validation

import (
	"errors"
	"net/url"
)

// URLKind discriminates URLResult.
type URLKind int

const (
	// URLUnset means the input was empty, which optional URL fields allow.
	URLUnset URLKind = iota
	// URLValid means the input parsed as an absolute URL.
	URLValid
	// URLInvalid means the input was non-empty but not an absolute URL.
	URLInvalid
)

func (k URLKind) String() string {
	switch k {
	case URLUnset:
		return "unset"
	case URLValid:
		return "valid"
	case URLInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// URLResult is the outcome of parsing an optional URL field. URL is set only
// for URLValid and Reason only for URLInvalid.
type URLResult struct {
	Kind   URLKind
	URL    *url.URL
	Reason string
}

var (
	errMissingScheme = errors.New("missing scheme")
	errMissingTarget = errors.New("missing host or path")
)

// ParseOptionalURL classifies raw as unset, valid or invalid. An absolute URL
// needs a scheme plus a host, an opaque part or a path (so mailto: and file:
// URLs pass while "example.com" and "http://" do not).
func ParseOptionalURL(raw string) URLResult {
	if raw == "" {
		return URLResult{Kind: URLUnset}
	}
	parsed, err := url.Parse(raw)
	if err == nil {
		err = checkAbsolute(parsed)
	}
	if err != nil {
		return URLResult{Kind: URLInvalid, Reason: err.Error()}
	}
	return URLResult{Kind: URLValid, URL: parsed}
}

func checkAbsolute(u *url.URL) error {
	if u.Scheme == "" {
		return errMissingScheme
	}
	if u.Host == "" && u.Opaque == "" && u.Path == "" {
		return errMissingTarget
	}
	return nil
}
