package incident

import "math"

// SeverityCount is one priority class with its share of the total.
type SeverityCount struct {
	Priority Priority `json:"priority"`
	Count    int      `json:"count"`
	Percent  float64  `json:"percent"`
}

// SeverityView holds the per-class breakdown in the fixed order critical,
// warning, other.
type SeverityView struct {
	Total   int             `json:"total"`
	Classes []SeverityCount `json:"classes"`
}

// AnalyzeSeverity counts events per priority class and computes each class's
// percentage of the total, rounded to one decimal. A zero total yields 0.0
// percentages for every class.
func AnalyzeSeverity(events []Event) SeverityView {
	counts := make(map[Priority]int, 3)
	for _, ev := range events {
		counts[ev.Priority]++
	}

	view := SeverityView{Total: len(events)}
	for _, p := range []Priority{PriorityCritical, PriorityWarning, PriorityOther} {
		c := SeverityCount{Priority: p, Count: counts[p]}
		if view.Total > 0 {
			c.Percent = round1(float64(counts[p]) / float64(view.Total) * 100)
		}
		view.Classes = append(view.Classes, c)
	}
	return view
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
