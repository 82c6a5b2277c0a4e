// Package schema publishes the FormRecord contract as an OpenAPI 3 document
// and checks outgoing payloads against it. The schema mirrors the field rules
// in package wizard; format keywords (email, uri) are advisory and are not
// enforced by ValidatePayload.
package schema
