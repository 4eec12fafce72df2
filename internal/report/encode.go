package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, rep Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rep)
}

// WriteYAML writes the report as a YAML document.
func WriteYAML(w io.Writer, rep Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(rep); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	return encoder.Close()
}

// Write dispatches on format: "text", "json" or "yaml".
func Write(w io.Writer, rep Report, format string, opts TextOptions) error {
	switch format {
	case "", "text":
		return WriteText(w, rep, opts)
	case "json":
		return WriteJSON(w, rep)
	case "yaml":
		return WriteYAML(w, rep)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
