package incident

import "testing"

func fired(entity, condition string, p Priority) Event {
	return Event{EntityName: entity, ConditionName: condition, Priority: p}
}

func TestAnalyzeEntitiesNestedGrouping(t *testing.T) {
	events := []Event{
		fired("host-01", "High CPU", PriorityCritical),
		fired("host-01", "High CPU", PriorityWarning),
		fired("host-02", "5xx Errors", PriorityCritical),
	}

	ranking := AnalyzeEntities(events)

	if len(ranking.Entities) != 2 {
		t.Fatalf("Entities len = %d, want 2", len(ranking.Entities))
	}

	hot := ranking.Entities[0]
	if hot.EntityName != "host-01" || hot.Total != 2 {
		t.Fatalf("hottest = %s total %d, want host-01 total 2", hot.EntityName, hot.Total)
	}
	if len(hot.Groups) != 2 {
		t.Fatalf("host-01 groups len = %d, want 2", len(hot.Groups))
	}
	for _, g := range hot.Groups {
		if g.ConditionName != "High CPU" || g.Count != 1 {
			t.Errorf("inner group = %+v, want High CPU count 1", g)
		}
	}
}

func TestAnalyzeEntitiesTotalEqualsNestedSum(t *testing.T) {
	events := []Event{
		fired("a", "x", PriorityCritical),
		fired("a", "x", PriorityCritical),
		fired("a", "y", PriorityWarning),
		fired("b", "z", PriorityOther),
	}

	ranking := AnalyzeEntities(events)

	for _, e := range ranking.Entities {
		sum := 0
		for _, g := range e.Groups {
			sum += g.Count
		}
		if e.Total != sum {
			t.Errorf("entity %s: Total = %d, nested sum = %d", e.EntityName, e.Total, sum)
		}
	}
}

func TestAnalyzeEntitiesOuterTieBreakByName(t *testing.T) {
	events := []Event{
		fired("zebra", "x", PriorityCritical),
		fired("alpha", "y", PriorityCritical),
	}

	ranking := AnalyzeEntities(events)

	if ranking.Entities[0].EntityName != "alpha" {
		t.Errorf("first entity = %s, want alpha (name tie-break)", ranking.Entities[0].EntityName)
	}
}

func TestAnalyzeEntitiesInnerOrdering(t *testing.T) {
	events := []Event{
		fired("host", "Disk Full", PriorityWarning),
		fired("host", "High CPU", PriorityCritical),
		fired("host", "High CPU", PriorityCritical),
		fired("host", "Apdex", PriorityCritical),
	}

	ranking := AnalyzeEntities(events)
	groups := ranking.Entities[0].Groups

	if groups[0].ConditionName != "High CPU" || groups[0].Count != 2 {
		t.Errorf("groups[0] = %+v, want High CPU count 2", groups[0])
	}
	// Remaining two tied at 1: condition ascending.
	if groups[1].ConditionName != "Apdex" || groups[2].ConditionName != "Disk Full" {
		t.Errorf("tied groups = %s, %s, want Apdex then Disk Full", groups[1].ConditionName, groups[2].ConditionName)
	}
}

func TestAnalyzeEntitiesOrderIndependent(t *testing.T) {
	a := []Event{
		fired("h1", "x", PriorityCritical),
		fired("h2", "y", PriorityWarning),
		fired("h1", "x", PriorityWarning),
	}
	b := []Event{a[1], a[2], a[0]}

	ra := AnalyzeEntities(a)
	rb := AnalyzeEntities(b)

	if len(ra.Entities) != len(rb.Entities) {
		t.Fatalf("entity counts differ: %d vs %d", len(ra.Entities), len(rb.Entities))
	}
	for i := range ra.Entities {
		if ra.Entities[i].EntityName != rb.Entities[i].EntityName || ra.Entities[i].Total != rb.Entities[i].Total {
			t.Errorf("Entities[%d] differs: %+v vs %+v", i, ra.Entities[i], rb.Entities[i])
		}
	}
}

func TestEntityTop(t *testing.T) {
	events := []Event{
		fired("a", "x", PriorityCritical),
		fired("b", "y", PriorityWarning),
		fired("c", "z", PriorityOther),
	}
	ranking := AnalyzeEntities(events)

	if got := ranking.Top(1); len(got) != 1 {
		t.Errorf("Top(1) len = %d, want 1", len(got))
	}
	if got := ranking.Top(0); len(got) != 3 {
		t.Errorf("Top(0) len = %d, want 3", len(got))
	}
}

func TestAnalyzeEntitiesEmpty(t *testing.T) {
	ranking := AnalyzeEntities(nil)
	if len(ranking.Entities) != 0 {
		t.Errorf("Entities len = %d, want 0", len(ranking.Entities))
	}
}
