package incident

import (
	"testing"
	"time"
)

func row(day, hour int, priority, policy, condition, entity string) map[string]any {
	return map[string]any{
		"timestamp":     float64(time.Date(2026, 8, day, hour, 0, 0, 0, time.UTC).UnixMilli()),
		"priority":      priority,
		"policyName":    policy,
		"conditionName": condition,
		"entityName":    entity,
	}
}

func TestAnalyzeScenario(t *testing.T) {
	results := []any{
		row(1, 10, "critical", "Database", "High CPU", "host-01"),
		row(1, 10, "warning", "Database", "High CPU", "host-01"),
		row(2, 3, "critical", "Web", "5xx Errors", "host-02"),
	}

	rep, err := Analyze(results)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if rep.TotalEvents != 3 || rep.InvalidTimestamps != 0 {
		t.Errorf("TotalEvents=%d InvalidTimestamps=%d, want 3/0", rep.TotalEvents, rep.InvalidTimestamps)
	}

	// Severity: critical 66.7%, warning 33.3%.
	if c := bySeverity(rep.Severity, PriorityCritical); c.Count != 2 || c.Percent != 66.7 {
		t.Errorf("critical = %d (%.1f%%), want 2 (66.7%%)", c.Count, c.Percent)
	}
	if c := bySeverity(rep.Severity, PriorityWarning); c.Count != 1 || c.Percent != 33.3 {
		t.Errorf("warning = %d (%.1f%%), want 1 (33.3%%)", c.Count, c.Percent)
	}

	// Daily breakdown: day1=2, day2=1; peak hour 10.
	if len(rep.Temporal.Daily) != 2 || rep.Temporal.Daily[0].Count != 2 || rep.Temporal.Daily[1].Count != 1 {
		t.Errorf("Daily = %+v, want [2, 1]", rep.Temporal.Daily)
	}
	if rep.Temporal.PeakHour != 10 {
		t.Errorf("PeakHour = %d, want 10", rep.Temporal.PeakHour)
	}

	// Root causes: the two Database/High CPU groups tie at count 1;
	// priority ascending puts critical first.
	g := rep.RootCauses.Groups
	if len(g) != 3 {
		t.Fatalf("root cause groups = %d, want 3", len(g))
	}
	if g[0].PolicyName != "Database" || g[0].Priority != PriorityCritical || g[0].Count != 1 {
		t.Errorf("Groups[0] = %+v", g[0])
	}
	if g[1].PolicyName != "Database" || g[1].Priority != PriorityWarning || g[1].Count != 1 {
		t.Errorf("Groups[1] = %+v", g[1])
	}

	// Entity hotspot: host-01 total 2 with two nested High CPU groups.
	hot := rep.Entities.Entities[0]
	if hot.EntityName != "host-01" || hot.Total != 2 || len(hot.Groups) != 2 {
		t.Errorf("hottest entity = %+v, want host-01 total 2 with 2 groups", hot)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	rep, err := Analyze(nil)
	if err != nil {
		t.Fatalf("Analyze(nil) error: %v", err)
	}

	if rep.TotalEvents != 0 || rep.InvalidTimestamps != 0 {
		t.Errorf("TotalEvents=%d InvalidTimestamps=%d, want 0/0", rep.TotalEvents, rep.InvalidTimestamps)
	}
	if rep.Temporal.PeakHour != -1 {
		t.Errorf("PeakHour = %d, want -1", rep.Temporal.PeakHour)
	}
	if len(rep.RootCauses.Groups) != 0 || len(rep.Entities.Entities) != 0 {
		t.Error("empty input produced non-empty rankings")
	}
	if rep.Severity.Total != 0 {
		t.Errorf("Severity.Total = %d, want 0", rep.Severity.Total)
	}
}

func TestAnalyzeUnparsableTimestampPolicy(t *testing.T) {
	results := []any{
		row(1, 10, "critical", "Database", "High CPU", "host-01"),
		map[string]any{
			"timestamp":     "garbage",
			"priority":      "warning",
			"policyName":    "Web",
			"conditionName": "5xx Errors",
			"entityName":    "host-02",
		},
	}

	rep, err := Analyze(results)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if rep.InvalidTimestamps != 1 {
		t.Errorf("InvalidTimestamps = %d, want 1", rep.InvalidTimestamps)
	}

	// Excluded from temporal views.
	daily := 0
	for _, d := range rep.Temporal.Daily {
		daily += d.Count
	}
	if daily != 1 {
		t.Errorf("daily total = %d, want 1", daily)
	}

	// Included in severity, root-cause, and entity views.
	if rep.Severity.Total != 2 {
		t.Errorf("Severity.Total = %d, want 2", rep.Severity.Total)
	}
	if len(rep.RootCauses.Groups) != 2 {
		t.Errorf("root cause groups = %d, want 2", len(rep.RootCauses.Groups))
	}
	if len(rep.Entities.Entities) != 2 {
		t.Errorf("entities = %d, want 2", len(rep.Entities.Entities))
	}
}

func TestAnalyzeViewTotalsMatchCollection(t *testing.T) {
	results := []any{
		row(1, 1, "critical", "A", "x", "h1"),
		row(1, 2, "warning", "B", "y", "h2"),
		row(2, 3, "other", "C", "z", "h1"),
		map[string]any{"priority": "critical"}, // no timestamp, all unknowns
	}

	rep, err := Analyze(results)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	timestamped := rep.TotalEvents - rep.InvalidTimestamps
	daily := 0
	for _, d := range rep.Temporal.Daily {
		daily += d.Count
	}
	if daily != timestamped {
		t.Errorf("daily sum = %d, want %d", daily, timestamped)
	}

	severity := 0
	for _, c := range rep.Severity.Classes {
		severity += c.Count
	}
	if severity != rep.TotalEvents {
		t.Errorf("severity sum = %d, want %d", severity, rep.TotalEvents)
	}

	causes := 0
	for _, g := range rep.RootCauses.Groups {
		causes += g.Count
	}
	if causes != rep.TotalEvents {
		t.Errorf("root cause sum = %d, want %d", causes, rep.TotalEvents)
	}

	entities := 0
	for _, e := range rep.Entities.Entities {
		entities += e.Total
	}
	if entities != rep.TotalEvents {
		t.Errorf("entity sum = %d, want %d", entities, rep.TotalEvents)
	}
}

func TestAnalyzePropagatesInvalidInput(t *testing.T) {
	_, err := Analyze([]any{42})
	if err == nil {
		t.Fatal("Analyze() = nil error for non-record input")
	}
}
