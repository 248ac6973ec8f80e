package incident

import "sort"

// DayCount is one calendar day's event count.
type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD, UTC
	Count int    `json:"count"`
}

// TemporalView buckets timestamped events by calendar day and by hour of day.
// PeakHour is -1 when no event carries a usable timestamp.
type TemporalView struct {
	Daily     []DayCount `json:"daily"`
	Hourly    [24]int    `json:"hourly"`
	PeakHour  int        `json:"peak_hour"`
	PeakCount int        `json:"peak_count"`
}

// AnalyzeTemporal computes the daily breakdown (sorted ascending by date),
// the hour-of-day distribution across all days, and the peak hour. Events
// without a valid timestamp are skipped. Ties on the peak resolve to the
// lowest hour number.
func AnalyzeTemporal(events []Event) TemporalView {
	view := TemporalView{PeakHour: -1}

	byDay := make(map[string]int)
	for _, ev := range events {
		if !ev.HasTime {
			continue
		}
		byDay[ev.OpenedAt.Format("2006-01-02")]++
		view.Hourly[ev.OpenedAt.Hour()]++
	}

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)
	for _, d := range days {
		view.Daily = append(view.Daily, DayCount{Date: d, Count: byDay[d]})
	}

	for h := range view.Hourly {
		if view.Hourly[h] > view.PeakCount {
			view.PeakHour = h
			view.PeakCount = view.Hourly[h]
		}
	}

	return view
}
