package web

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName names the built-in manifest.
const DefaultThemeName = "default"

// ErrThemeNotFound is returned by the built-in selector for unknown themes.
var ErrThemeNotFound = errors.New("web: theme not found")

// DefaultManifest returns the built-in theme with a light base and a dark
// variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-primary":    "#2563eb",
			"color-primary-fg": "#ffffff",
			"color-surface":    "#ffffff",
			"color-text":       "#1f2937",
			"color-muted":      "#6b7280",
			"color-border":     "#d1d5db",
			"color-error":      "#dc2626",
			"color-success":    "#16a34a",
			"radius":           "6px",
			"font-family":      "system-ui, sans-serif",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"color-surface": "#111827",
					"color-text":    "#f9fafb",
					"color-muted":   "#9ca3af",
					"color-border":  "#374151",
				},
			},
		},
	}
}

// manifestSelector resolves themes from manifests held in memory. Manifests
// are registered with a go-theme registry first so malformed ones are
// rejected at construction.
type manifestSelector struct {
	manifests map[string]*theme.Manifest
}

// NewThemeSelector returns a selector over the given manifests. With no
// manifests it serves DefaultManifest.
func NewThemeSelector(manifests ...*theme.Manifest) (theme.ThemeSelector, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{DefaultManifest()}
	}
	registry := theme.NewRegistry()
	sel := &manifestSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, m := range manifests {
		if m == nil {
			continue
		}
		if err := registry.Register(m); err != nil {
			return nil, fmt.Errorf("web: register theme %q: %w", m.Name, err)
		}
		sel.manifests[m.Name] = m
	}
	return sel, nil
}

func (s *manifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultThemeName
	}
	m, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	variant = strings.TrimSpace(variant)
	if _, ok := m.Variants[variant]; !ok {
		variant = ""
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: m}, nil
}

// rendererConfig flattens a selection into the values templates consume:
// variant tokens override base tokens, each token becomes a CSS custom
// property and asset keys resolve under the manifest prefix.
func rendererConfig(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	m := sel.Manifest
	variant := m.Variants[sel.Variant]

	tokens := mergeStrings(m.Tokens, variant.Tokens)
	partials := mergeStrings(m.Templates, variant.Templates)
	files := mergeStrings(m.Assets.Files, variant.Assets.Files)
	prefix := m.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok {
				return ""
			}
			if prefix == "" {
				return file
			}
			return path.Join(prefix, file)
		},
	}
}

type themeView struct {
	Name       string
	Variant    string
	Stylesheet string
	Style      string
}

func buildThemeView(cfg *theme.RendererConfig) themeView {
	if cfg == nil {
		return themeView{}
	}
	view := themeView{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Style:   cssVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		view.Stylesheet = cfg.AssetURL("stylesheet")
	}
	return view
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func mergeStrings(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
