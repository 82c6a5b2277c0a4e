// Package web serves the wizard as server-rendered HTML. Each browser session
// owns a wizard.Wizard held in memory; pages are pongo2 templates embedded in
// the binary, themed through go-theme manifests. Submissions run in the
// background so the page can show the submitting state while the transport
// works.
package web
