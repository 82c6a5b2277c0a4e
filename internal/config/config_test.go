package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

func isolated(t *testing.T) Loader {
	t.Helper()
	dir := t.TempDir()
	return Loader{
		GlobalPath:  filepath.Join(dir, "global", "formwizard.yml"),
		ProjectPath: filepath.Join(dir, "formwizard.yml"),
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := isolated(t).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), *cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPrecedence(t *testing.T) {
	l := isolated(t)
	writeFile(t, l.GlobalPath, "listen_addr: \":9000\"\ntheme: dusk\nsubmit_delay: 5s\n")
	writeFile(t, l.ProjectPath, "theme: dawn\nlog_level: debug\n")
	t.Setenv("FORMWIZARD_LOG_LEVEL", "warn")
	t.Setenv("FORMWIZARD_SESSION_TTL", "1h")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("listen-addr", ":8080", "")
	flags.String("transport", "delay", "")
	if err := flags.Parse([]string{"--listen-addr", ":7000"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	l.Flags = flags

	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":7000" {
		t.Fatalf("flag should win, listen_addr = %q", cfg.ListenAddr)
	}
	if cfg.Theme != "dawn" {
		t.Fatalf("project file should override global, theme = %q", cfg.Theme)
	}
	if cfg.SubmitDelay != 5*time.Second {
		t.Fatalf("global file value lost, submit_delay = %s", cfg.SubmitDelay)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("env should override files, log_level = %q", cfg.LogLevel)
	}
	if cfg.SessionTTL != time.Hour {
		t.Fatalf("session_ttl = %s", cfg.SessionTTL)
	}
	if cfg.Transport != TransportDelay {
		t.Fatalf("unchanged flag must not override, transport = %q", cfg.Transport)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown transport", func(c *Config) { c.Transport = "carrier-pigeon" }},
		{"http without endpoint", func(c *Config) { c.Transport = TransportHTTP }},
		{"bad output format", func(c *Config) { c.OutputFormat = "xml" }},
		{"bad log format", func(c *Config) { c.LogFormat = "logfmt" }},
		{"negative delay", func(c *Config) { c.SubmitDelay = -time.Second }},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("err = %v", err)
			}
		})
	}

	cfg := Default()
	cfg.Transport = TransportHTTP
	cfg.HTTPEndpoint = "https://example.com/submissions"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid http config rejected: %v", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	l := isolated(t)
	want := Default()
	want.Transport = TransportNATS
	want.NATSRequestReply = true
	want.SubmitDelay = 1500 * time.Millisecond

	if err := Write(l.ProjectPath, want, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Write(l.ProjectPath, want, false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if err := Write(l.ProjectPath, want, true); err != nil {
		t.Fatalf("forced write: %v", err)
	}

	got, err := l.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGlobalPathHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := GlobalPath(), "/custom/config/formwizard/formwizard.yml"; got != want {
		t.Fatalf("GlobalPath() = %q, want %q", got, want)
	}
}
