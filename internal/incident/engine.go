// Package incident is the aggregation engine: it normalizes a fetched batch
// of raw incident records once and computes the analytical views that make up
// the diagnostic report. Everything here is a pure function of the normalized
// collection; the engine never reads the clock and keeps no state between
// runs.
package incident

// Report bundles the outputs of every analyzer over one normalized
// collection. Events carries the collection itself for the CSV exporter and
// the payload builder; it is excluded from serialized reports.
type Report struct {
	TotalEvents       int              `json:"total_events"`
	InvalidTimestamps int              `json:"invalid_timestamps"`
	Temporal          TemporalView     `json:"temporal"`
	Severity          SeverityView     `json:"severity"`
	RootCauses        RootCauseRanking `json:"root_causes"`
	Entities          EntityRanking    `json:"entities"`
	Insights          Insights         `json:"insights"`
	Events            []Event          `json:"-"`
}

// Analyze normalizes the raw records and runs every analyzer over the result.
// The only error it can return is ErrInvalidInput; malformed individual
// records are absorbed by normalization. Empty input produces a well-formed
// empty report.
func Analyze(results []any) (*Report, error) {
	events, invalid, err := Normalize(results)
	if err != nil {
		return nil, err
	}

	return &Report{
		TotalEvents:       len(events),
		InvalidTimestamps: invalid,
		Temporal:          AnalyzeTemporal(events),
		Severity:          AnalyzeSeverity(events),
		RootCauses:        AnalyzeRootCauses(events),
		Entities:          AnalyzeEntities(events),
		Insights:          AnalyzeInsights(events),
		Events:            events,
	}, nil
}
