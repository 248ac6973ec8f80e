package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/JimHagan/nr-alert-analyzer/internal/incident"
)

// CSVExporter writes the normalized event collection as CSV, one row per
// event, for offline inspection in a spreadsheet.
type CSVExporter struct {
	Writer io.Writer
}

// Export writes a header row followed by every normalized event.
func (e *CSVExporter) Export(events []incident.Event) error {
	cw := csv.NewWriter(e.Writer)

	header := []string{"opened_at", "priority", "policy_name", "condition_name", "entity_name", "incident_id"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, ev := range events {
		openedAt := ""
		if ev.HasTime {
			openedAt = ev.OpenedAt.UTC().Format(time.RFC3339)
		}
		row := []string{openedAt, string(ev.Priority), ev.PolicyName, ev.ConditionName, ev.EntityName, ev.IncidentID}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
