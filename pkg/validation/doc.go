// Package validation holds the pure field rules used by the wizard. Every rule
// takes a single value plus the message to report and returns nil when the
// value passes or an *Error carrying that message when it does not. Rules never
// trim input and count string length in Unicode code points so that limits
// mirror what a user sees in an input box.
package validation
