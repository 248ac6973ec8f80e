package incident

import "sort"

// ConditionGroup is one (condition, priority) grouping within an entity.
type ConditionGroup struct {
	ConditionName string   `json:"condition_name"`
	Priority      Priority `json:"priority"`
	Count         int      `json:"count"`
}

// EntityGroup is one monitored target with its total incident volume and the
// ranked (condition, priority) groups that fired against it. Total always
// equals the sum of the nested group counts.
type EntityGroup struct {
	EntityName string           `json:"entity_name"`
	Total      int              `json:"total"`
	Groups     []ConditionGroup `json:"groups"`
}

// EntityRanking orders entities by incident volume, hottest first.
type EntityRanking struct {
	Entities []EntityGroup `json:"entities"`
}

// AnalyzeEntities performs the two-level grouping: outer by entity name,
// inner by (condition, priority) within each entity. Entities sort by total
// count descending with name-ascending tie-break; inner groups sort by count
// descending with condition-then-priority ascending tie-break.
func AnalyzeEntities(events []Event) EntityRanking {
	type innerKey struct {
		condition string
		priority  Priority
	}

	byEntity := make(map[string]map[innerKey]int)
	for _, ev := range events {
		inner := byEntity[ev.EntityName]
		if inner == nil {
			inner = make(map[innerKey]int)
			byEntity[ev.EntityName] = inner
		}
		inner[innerKey{ev.ConditionName, ev.Priority}]++
	}

	entities := make([]EntityGroup, 0, len(byEntity))
	for name, inner := range byEntity {
		eg := EntityGroup{EntityName: name, Groups: make([]ConditionGroup, 0, len(inner))}
		for k, n := range inner {
			eg.Total += n
			eg.Groups = append(eg.Groups, ConditionGroup{
				ConditionName: k.condition,
				Priority:      k.priority,
				Count:         n,
			})
		}
		sort.Slice(eg.Groups, func(i, j int) bool {
			a, b := eg.Groups[i], eg.Groups[j]
			if a.Count != b.Count {
				return a.Count > b.Count
			}
			if a.ConditionName != b.ConditionName {
				return a.ConditionName < b.ConditionName
			}
			return a.Priority < b.Priority
		})
		entities = append(entities, eg)
	}

	sort.Slice(entities, func(i, j int) bool {
		a, b := entities[i], entities[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.EntityName < b.EntityName
	})

	return EntityRanking{Entities: entities}
}

// Top returns the first n entities of the ranking, or all of them when n
// exceeds the entity count or is not positive.
func (r EntityRanking) Top(n int) []EntityGroup {
	if n <= 0 || n >= len(r.Entities) {
		return r.Entities
	}
	return r.Entities[:n]
}
