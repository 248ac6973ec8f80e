package incident

import "time"

// Priority classifies an incident event. Unrecognized severity labels map to
// PriorityOther rather than being dropped.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityWarning  Priority = "warning"
	PriorityOther    Priority = "other"
)

// Unknown is the sentinel substituted for missing identifying fields.
const Unknown = "(unknown)"

// Event is a single normalized incident event. Immutable once produced by
// Normalize; every analyzer reads the same slice and writes only its own
// output.
type Event struct {
	OpenedAt      time.Time `json:"opened_at"`
	HasTime       bool      `json:"has_time"`
	Priority      Priority  `json:"priority"`
	PolicyName    string    `json:"policy_name"`
	ConditionName string    `json:"condition_name"`
	EntityName    string    `json:"entity_name"`
	IncidentID    string    `json:"incident_id,omitempty"`
}
