// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ExportJSON writes the full session (proposal, feedback history, state) as
// indented JSON. This is the convenience export format front ends offer for
// download; the SQLite archive remains the durable copy.
func ExportJSON(w io.Writer, s *Session) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return nil
}

// ExportYAML writes the full session as YAML.
func ExportYAML(w io.Writer, s *Session) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return enc.Close()
}

// Export writes the session in the named format ("json" or "yaml").
func Export(w io.Writer, s *Session, format string) error {
	switch strings.ToLower(format) {
	case "", "json":
		return ExportJSON(w, s)
	case "yaml", "yml":
		return ExportYAML(w, s)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
