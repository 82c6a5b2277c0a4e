package tui

import (
	"io"

	"go.uber.org/zap"
)

// OutputFormat controls how the submitted record is written.
type OutputFormat string

const (
	// OutputFormatJSON emits indented JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML emits block-style YAML with the JSON field names.
	OutputFormatYAML OutputFormat = "yaml"
	// OutputFormatPrettyText emits the review summary as text.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional formatting hints applied when printing messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme is used when no theme is configured.
var DefaultTheme = Theme{InfoPrefix: "", ErrorPrefix: "  ! "}

// Option configures the shell.
type Option func(*Shell)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Shell) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput sets where the submitted record is written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Shell) {
		if w != nil {
			s.out = w
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *Shell) {
		if format != "" {
			s.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Shell) {
		s.theme = theme
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}
