package incident

import "sort"

// RootCauseGroup is one (policy, condition, priority) grouping with its
// event count, flat and ready for rendering.
type RootCauseGroup struct {
	PolicyName    string   `json:"policy_name"`
	ConditionName string   `json:"condition_name"`
	Priority      Priority `json:"priority"`
	Count         int      `json:"count"`
}

// RootCauseRanking is the full ranking of alert sources ordered by volume.
type RootCauseRanking struct {
	Groups []RootCauseGroup `json:"groups"`
}

// AnalyzeRootCauses groups events by (policy, condition, priority) and ranks
// the groups by count descending. Ties resolve by policy name ascending, then
// condition name ascending, then priority ascending, so the order is
// reproducible regardless of input order.
func AnalyzeRootCauses(events []Event) RootCauseRanking {
	type key struct {
		policy    string
		condition string
		priority  Priority
	}

	counts := make(map[key]int)
	for _, ev := range events {
		counts[key{ev.PolicyName, ev.ConditionName, ev.Priority}]++
	}

	groups := make([]RootCauseGroup, 0, len(counts))
	for k, n := range counts {
		groups = append(groups, RootCauseGroup{
			PolicyName:    k.policy,
			ConditionName: k.condition,
			Priority:      k.priority,
			Count:         n,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.PolicyName != b.PolicyName {
			return a.PolicyName < b.PolicyName
		}
		if a.ConditionName != b.ConditionName {
			return a.ConditionName < b.ConditionName
		}
		return a.Priority < b.Priority
	})

	return RootCauseRanking{Groups: groups}
}

// Top returns the first n groups of the ranking, or all of them when n
// exceeds the group count or is not positive.
func (r RootCauseRanking) Top(n int) []RootCauseGroup {
	if n <= 0 || n >= len(r.Groups) {
		return r.Groups
	}
	return r.Groups[:n]
}
