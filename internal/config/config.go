// Package config loads formwizard settings with viper. Precedence, lowest
// first: defaults, the global file, the project file, FORMWIZARD_* env vars,
// bound CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	appName   = "formwizard"
	envPrefix = "FORMWIZARD"
)

// Transport names.
const (
	TransportDelay = "delay"
	TransportHTTP  = "http"
	TransportNATS  = "nats"
)

// Config holds every setting the CLI understands.
type Config struct {
	ListenAddr       string        `mapstructure:"listen_addr"`
	Transport        string        `mapstructure:"transport"`
	SubmitDelay      time.Duration `mapstructure:"submit_delay"`
	HTTPEndpoint     string        `mapstructure:"http_endpoint"`
	HTTPTimeout      time.Duration `mapstructure:"http_timeout"`
	NATSURL          string        `mapstructure:"nats_url"`
	NATSSubject      string        `mapstructure:"nats_subject"`
	NATSRequestReply bool          `mapstructure:"nats_request_reply"`
	SessionTTL       time.Duration `mapstructure:"session_ttl"`
	Theme            string        `mapstructure:"theme"`
	ThemeVariant     string        `mapstructure:"theme_variant"`
	OutputFormat     string        `mapstructure:"output_format"`
	LogLevel         string        `mapstructure:"log_level"`
	LogFormat        string        `mapstructure:"log_format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ListenAddr:   ":8080",
		Transport:    TransportDelay,
		SubmitDelay:  2 * time.Second,
		HTTPTimeout:  10 * time.Second,
		NATSSubject:  "formwizard.submissions",
		SessionTTL:   30 * time.Minute,
		Theme:        "default",
		OutputFormat: "pretty",
		LogLevel:     "info",
		LogFormat:    "console",
	}
}

// keys lists every setting in file order.
var keys = []string{
	"listen_addr",
	"transport",
	"submit_delay",
	"http_endpoint",
	"http_timeout",
	"nats_url",
	"nats_subject",
	"nats_request_reply",
	"session_ttl",
	"theme",
	"theme_variant",
	"output_format",
	"log_level",
	"log_format",
}

// Loader resolves configuration. The zero value reads the standard paths.
type Loader struct {
	// GlobalPath and ProjectPath override the file locations when set.
	GlobalPath  string
	ProjectPath string
	// Flags are bound by key name: a flag named "listen-addr" or
	// "listen_addr" overrides listen_addr when the user set it.
	Flags *pflag.FlagSet
}

// Load is shorthand for a zero Loader bound to flags.
func Load(flags *pflag.FlagSet) (*Config, error) {
	return Loader{Flags: flags}.Load()
}

// Load reads and validates the configuration.
func (l Loader) Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName(appName)

	def := Default()
	v.SetDefault("listen_addr", def.ListenAddr)
	v.SetDefault("transport", def.Transport)
	v.SetDefault("submit_delay", def.SubmitDelay)
	v.SetDefault("http_endpoint", def.HTTPEndpoint)
	v.SetDefault("http_timeout", def.HTTPTimeout)
	v.SetDefault("nats_url", def.NATSURL)
	v.SetDefault("nats_subject", def.NATSSubject)
	v.SetDefault("nats_request_reply", def.NATSRequestReply)
	v.SetDefault("session_ttl", def.SessionTTL)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("theme_variant", def.ThemeVariant)
	v.SetDefault("output_format", def.OutputFormat)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, key := range keys {
		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("config: bind %s env: %w", key, err)
		}
	}

	globalPath := l.GlobalPath
	if globalPath == "" {
		globalPath = GlobalPath()
	}
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", globalPath, err)
		}
	}
	projectPath := l.ProjectPath
	if projectPath == "" {
		projectPath = ProjectPath()
	}
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("config: merge %s: %w", projectPath, err)
		}
	}

	if l.Flags != nil {
		for _, key := range keys {
			flag := l.Flags.Lookup(strings.ReplaceAll(key, "_", "-"))
			if flag == nil {
				flag = l.Flags.Lookup(key)
			}
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("config: bind %s flag: %w", key, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid setting")

// Validate checks enumerated settings and cross-field requirements.
func (c Config) Validate() error {
	var problems []string
	switch c.Transport {
	case TransportDelay, TransportNATS:
	case TransportHTTP:
		if strings.TrimSpace(c.HTTPEndpoint) == "" {
			problems = append(problems, "http_endpoint is required when transport is http")
		}
	default:
		problems = append(problems, fmt.Sprintf("transport %q must be one of delay, http, nats", c.Transport))
	}
	switch c.OutputFormat {
	case "json", "yaml", "pretty":
	default:
		problems = append(problems, fmt.Sprintf("output_format %q must be one of json, yaml, pretty", c.OutputFormat))
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("log_format %q must be one of json, console", c.LogFormat))
	}
	if c.SubmitDelay < 0 {
		problems = append(problems, "submit_delay must not be negative")
	}
	if c.SessionTTL <= 0 {
		problems = append(problems, "session_ttl must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// GlobalPath returns $XDG_CONFIG_HOME/formwizard/formwizard.yml, falling back
// to ~/.config.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, appName+".yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName, appName+".yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return appName + ".yml"
}

// fileView is the on-disk shape; durations are written as strings so the
// file round-trips through viper.
type fileView struct {
	ListenAddr       string `yaml:"listen_addr"`
	Transport        string `yaml:"transport"`
	SubmitDelay      string `yaml:"submit_delay"`
	HTTPEndpoint     string `yaml:"http_endpoint"`
	HTTPTimeout      string `yaml:"http_timeout"`
	NATSURL          string `yaml:"nats_url"`
	NATSSubject      string `yaml:"nats_subject"`
	NATSRequestReply bool   `yaml:"nats_request_reply"`
	SessionTTL       string `yaml:"session_ttl"`
	Theme            string `yaml:"theme"`
	ThemeVariant     string `yaml:"theme_variant"`
	OutputFormat     string `yaml:"output_format"`
	LogLevel         string `yaml:"log_level"`
	LogFormat        string `yaml:"log_format"`
}

// Marshal encodes c as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(fileView{
		ListenAddr:       c.ListenAddr,
		Transport:        c.Transport,
		SubmitDelay:      c.SubmitDelay.String(),
		HTTPEndpoint:     c.HTTPEndpoint,
		HTTPTimeout:      c.HTTPTimeout.String(),
		NATSURL:          c.NATSURL,
		NATSSubject:      c.NATSSubject,
		NATSRequestReply: c.NATSRequestReply,
		SessionTTL:       c.SessionTTL.String(),
		Theme:            c.Theme,
		ThemeVariant:     c.ThemeVariant,
		OutputFormat:     c.OutputFormat,
		LogLevel:         c.LogLevel,
		LogFormat:        c.LogFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// Write stores c at path, creating parent directories. It refuses to
// overwrite an existing file unless force is set.
func Write(path string, c Config, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("config: %s already exists", path)
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
