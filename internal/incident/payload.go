package incident

import "time"

// PayloadEvent is the minimized per-event projection shared with the
// summarization endpoint. The field set is a privacy contract: exactly these
// five, never any other raw attribute.
type PayloadEvent struct {
	ConditionName string   `json:"condition_name"`
	PolicyName    string   `json:"policy_name"`
	EntityName    string   `json:"entity_name"`
	Priority      Priority `json:"priority"`
	OpenedAt      string   `json:"opened_at"` // RFC3339 UTC, empty when the timestamp was unparsable
}

// Payload is the structure handed to the external summarization caller. In
// summary-only mode it carries just the aggregates, so its size is bounded by
// the number of distinct groups; in full-context mode it adds one projection
// per normalized event.
type Payload struct {
	SummaryOnly bool             `json:"summary_only"`
	Temporal    TemporalView     `json:"temporal"`
	Severity    SeverityView     `json:"severity"`
	RootCauses  RootCauseRanking `json:"root_causes"`
	Entities    EntityRanking    `json:"entities"`
	Events      []PayloadEvent   `json:"events,omitempty"`
}

// BuildPayload shapes the report for the AI summarization collaborator. No
// network I/O happens here; the caller serializes and transmits the result.
func BuildPayload(r *Report, summaryOnly bool) Payload {
	p := Payload{
		SummaryOnly: summaryOnly,
		Temporal:    r.Temporal,
		Severity:    r.Severity,
		RootCauses:  r.RootCauses,
		Entities:    r.Entities,
	}
	if summaryOnly {
		return p
	}

	p.Events = make([]PayloadEvent, 0, len(r.Events))
	for _, ev := range r.Events {
		pe := PayloadEvent{
			ConditionName: ev.ConditionName,
			PolicyName:    ev.PolicyName,
			EntityName:    ev.EntityName,
			Priority:      ev.Priority,
		}
		if ev.HasTime {
			pe.OpenedAt = ev.OpenedAt.UTC().Format(time.RFC3339)
		}
		p.Events = append(p.Events, pe)
	}
	return p
}
