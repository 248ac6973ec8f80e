package incident

import (
	"sort"
	"strings"
	"time"
)

const flapWindow = 5 * time.Minute

// ConditionCount is a condition ranked by raw event volume.
type ConditionCount struct {
	ConditionName string `json:"condition_name"`
	Count         int    `json:"count"`
}

// RedundantCondition flags a condition name that exists in more than one
// policy, a common source of duplicate notifications.
type RedundantCondition struct {
	ConditionName string `json:"condition_name"`
	PolicyCount   int    `json:"policy_count"`
}

// Insights holds the deep-dive findings layered on top of the five core
// views: noise contributors, cross-policy redundancy, flappiness, and
// severity-label mismatches.
type Insights struct {
	UniqueIncidents    int                  `json:"unique_incidents"`
	TopNoise           []ConditionCount     `json:"top_noise,omitempty"`
	Redundant          []RedundantCondition `json:"redundant,omitempty"`
	FlappinessKnown    bool                 `json:"flappiness_known"`
	FlappinessRate     float64              `json:"flappiness_rate"` // percent of incidents resolving in < 5 min
	MislabeledCritical []string             `json:"mislabeled_critical,omitempty"`
}

// AnalyzeInsights computes the deep-dive metrics. Flappiness needs incident
// IDs and valid timestamps; when neither is present FlappinessKnown stays
// false and the rate is meaningless.
func AnalyzeInsights(events []Event) Insights {
	in := Insights{
		TopNoise:  topConditions(events, 3),
		Redundant: redundantConditions(events, 5),
	}

	type span struct{ min, max time.Time }
	spans := make(map[string]span)
	ids := make(map[string]struct{})
	for _, ev := range events {
		if ev.IncidentID == "" {
			continue
		}
		ids[ev.IncidentID] = struct{}{}
		if !ev.HasTime {
			continue
		}
		s, ok := spans[ev.IncidentID]
		if !ok {
			spans[ev.IncidentID] = span{min: ev.OpenedAt, max: ev.OpenedAt}
			continue
		}
		if ev.OpenedAt.Before(s.min) {
			s.min = ev.OpenedAt
		}
		if ev.OpenedAt.After(s.max) {
			s.max = ev.OpenedAt
		}
		spans[ev.IncidentID] = s
	}
	in.UniqueIncidents = len(ids)

	if len(spans) > 0 {
		flappy := 0
		for _, s := range spans {
			d := s.max.Sub(s.min)
			if d > 0 && d < flapWindow {
				flappy++
			}
		}
		in.FlappinessKnown = true
		in.FlappinessRate = round1(float64(flappy) / float64(len(spans)) * 100)
	}

	mislabeled := make(map[string]struct{})
	for _, ev := range events {
		if ev.Priority == PriorityCritical && strings.Contains(strings.ToLower(ev.ConditionName), "warning") {
			mislabeled[ev.ConditionName] = struct{}{}
		}
	}
	for name := range mislabeled {
		in.MislabeledCritical = append(in.MislabeledCritical, name)
	}
	sort.Strings(in.MislabeledCritical)

	return in
}

func topConditions(events []Event, n int) []ConditionCount {
	counts := make(map[string]int)
	for _, ev := range events {
		counts[ev.ConditionName]++
	}

	ranked := make([]ConditionCount, 0, len(counts))
	for name, c := range counts {
		ranked = append(ranked, ConditionCount{ConditionName: name, Count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].ConditionName < ranked[j].ConditionName
	})

	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

func redundantConditions(events []Event, n int) []RedundantCondition {
	policies := make(map[string]map[string]struct{})
	for _, ev := range events {
		set := policies[ev.ConditionName]
		if set == nil {
			set = make(map[string]struct{})
			policies[ev.ConditionName] = set
		}
		set[ev.PolicyName] = struct{}{}
	}

	var redundant []RedundantCondition
	for name, set := range policies {
		if len(set) > 1 {
			redundant = append(redundant, RedundantCondition{ConditionName: name, PolicyCount: len(set)})
		}
	}
	sort.Slice(redundant, func(i, j int) bool {
		if redundant[i].PolicyCount != redundant[j].PolicyCount {
			return redundant[i].PolicyCount > redundant[j].PolicyCount
		}
		return redundant[i].ConditionName < redundant[j].ConditionName
	})

	if n > 0 && n < len(redundant) {
		redundant = redundant[:n]
	}
	return redundant
}
