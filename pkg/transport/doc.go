// Package transport provides wizard.Transport implementations: a simulated
// delay, an HTTP JSON endpoint, a NATS subject and a plain function adapter.
// Rejections that carry field feedback surface as *FieldErrors so the wizard
// can merge them into its error map.
package transport
