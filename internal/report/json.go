package report

import (
	"encoding/json"
	"fmt"
)

// Generate writes the full report envelope as indented JSON. Individual event
// rows are never serialized here; only the payload builder decides when rows
// leave the process.
func (r *JSONReporter) Generate(data Data) error {
	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
