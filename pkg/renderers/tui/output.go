package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Encode serializes record in format.
func Encode(record wizard.FormRecord, format OutputFormat) ([]byte, error) {
	switch format {
	case "", OutputFormatJSON:
		out, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return append(out, '\n'), nil
	case OutputFormatYAML:
		raw, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		var node yaml.Node
		if err := yaml.Unmarshal(raw, &node); err != nil {
			return nil, fmt.Errorf("tui: decode json as yaml: %w", err)
		}
		clearStyle(&node)
		out, err := yaml.Marshal(&node)
		if err != nil {
			return nil, fmt.Errorf("tui: encode yaml: %w", err)
		}
		return out, nil
	case OutputFormatPrettyText:
		return []byte(Summary(record)), nil
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", format)
	}
}

func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}

// Summary renders the review sections as indented text.
func Summary(record wizard.FormRecord) string {
	var b strings.Builder
	for i, section := range wizard.Review(record) {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(section.Title)
		b.WriteByte('\n')
		for _, item := range section.Items {
			value := item.Value
			if len(item.List) > 0 {
				value = strings.Join(item.List, ", ")
			}
			fmt.Fprintf(&b, "  %s: %s\n", item.Label, value)
		}
	}
	return b.String()
}
