// Package wizard implements the core of the multi-step form: the record and
// its field rules, the fixed four-step table, the store that holds values and
// per-field errors, the navigator that gates forward moves on validation, and
// the submission pipeline that hands a validated record to a Transport.
//
// Shells (terminal, HTTP) only read Snapshot and call SetField, Advance,
// Retreat, GoTo, Submit and Reset. Validation never runs on write; it runs
// when the user tries to move forward or submit, and every attempt
// re-validates so a fixed field is never blocked by a stale message.
package wizard
