package incident

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidInput indicates the raw collection is not a sequence of
// record-like structures. This is a collaborator contract violation, not bad
// data, and is the only fatal condition in normalization.
var ErrInvalidInput = errors.New("input is not a sequence of incident records")

// Normalize validates and coerces raw NRQL result rows into Events. It never
// fails on a malformed individual record: missing identifying fields become
// the Unknown sentinel, unrecognized priorities become PriorityOther, and an
// unparsable or missing timestamp leaves HasTime false and increments the
// returned invalid count. Events without a usable timestamp stay in the
// collection so the non-temporal views still see them.
func Normalize(results []any) ([]Event, int, error) {
	events := make([]Event, 0, len(results))
	invalid := 0

	for i, raw := range results {
		rec, ok := raw.(map[string]any)
		if !ok {
			return nil, 0, fmt.Errorf("%w: element %d is %T", ErrInvalidInput, i, raw)
		}

		ev := Event{
			Priority:      normalizePriority(stringField(rec, "priority")),
			PolicyName:    orUnknown(stringField(rec, "policyName")),
			ConditionName: orUnknown(stringField(rec, "conditionName")),
			EntityName:    orUnknown(firstString(rec, "entity.name", "targetName", "entityName")),
			IncidentID:    idField(rec, "incidentId"),
		}

		if ts, ok := parseTimestamp(rec); ok {
			ev.OpenedAt = ts.UTC()
			ev.HasTime = true
		} else {
			invalid++
		}

		events = append(events, ev)
	}

	return events, invalid, nil
}

func normalizePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return PriorityCritical
	case "warning":
		return PriorityWarning
	default:
		return PriorityOther
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unknown
	}
	return s
}

func stringField(rec map[string]any, key string) string {
	s, _ := rec[key].(string)
	return s
}

func firstString(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := rec[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// idField renders an identifier that the API may return as either a string
// or a JSON number.
func idField(rec map[string]any, key string) string {
	switch v := rec[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// parseTimestamp extracts the event's opening time. NRQL rows carry epoch
// milliseconds under "timestamp"; an RFC3339 "openedAt" string is accepted as
// a fallback.
func parseTimestamp(rec map[string]any) (time.Time, bool) {
	switch v := rec["timestamp"].(type) {
	case float64:
		if v > 0 {
			return time.UnixMilli(int64(v)), true
		}
	case json.Number:
		if ms, err := v.Int64(); err == nil && ms > 0 {
			return time.UnixMilli(ms), true
		}
	case int64:
		if v > 0 {
			return time.UnixMilli(v), true
		}
	case string:
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil && ms > 0 {
			return time.UnixMilli(ms), true
		}
	}

	if s, ok := rec["openedAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
