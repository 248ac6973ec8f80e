package report

import (
	"fmt"
	"io"
	"strings"
)

const defaultTopN = 10

// Generate writes human-readable terminal output.
func (r *TextReporter) Generate(data Data) error {
	topN := r.TopN
	if topN <= 0 {
		topN = defaultTopN
	}

	w := &errWriter{w: r.Writer}
	rep := data.Report

	w.printf("%s — Incident Analysis Report\n", data.Tool)
	w.println(strings.Repeat("=", 45))
	w.printf("Account: %s (%d)\n", data.Account.Name, data.Account.ID)
	w.printf("Window:  %s to %s\n",
		data.Window.Since.UTC().Format("2006-01-02 15:04:05"),
		data.Window.Until.UTC().Format("2006-01-02 15:04:05"))
	w.printf("Events:  %d (%d with unparsable timestamps)\n", rep.TotalEvents, rep.InvalidTimestamps)

	writeHeader(w, "Temporal Analysis")
	if len(rep.Temporal.Daily) == 0 {
		w.println("  No events with valid timestamps in window.")
	} else {
		w.println("Incidents by day:")
		for _, d := range rep.Temporal.Daily {
			w.printf("  %s: %d\n", d.Date, d.Count)
		}
		if rep.Temporal.PeakHour >= 0 {
			w.printf("\nPeak hour: %02d:00 with %d events\n", rep.Temporal.PeakHour, rep.Temporal.PeakCount)
		} else {
			w.println("\nPeak hour: undefined")
		}
	}

	writeHeader(w, "Severity Analysis")
	for _, c := range rep.Severity.Classes {
		w.printf("  * %s: %d (%.1f%%)\n", c.Priority, c.Count, c.Percent)
	}

	writeHeader(w, "Source / Root Cause Analysis")
	if len(rep.RootCauses.Groups) == 0 {
		w.println("  No events.")
	}
	for i, g := range rep.RootCauses.Top(topN) {
		w.printf("  %d. [%d] %s | Policy: '%s' -> Condition: '%s'\n",
			i+1, g.Count, g.Priority, g.PolicyName, g.ConditionName)
	}

	writeHeader(w, "Related Entity Analysis")
	if len(rep.Entities.Entities) == 0 {
		w.println("  No events.")
	}
	for _, e := range rep.Entities.Top(topN) {
		w.printf("  * %s: %d\n", e.EntityName, e.Total)
		for _, g := range e.Groups {
			w.printf("      - [%s] %s: %d\n", g.Priority, g.ConditionName, g.Count)
		}
	}

	writeInsights(w, data)

	if data.AISummary != "" {
		writeHeader(w, "AI Summary")
		w.println(data.AISummary)
	}

	return w.err
}

func writeInsights(w *errWriter, data Data) {
	in := data.Report.Insights

	writeHeader(w, "Deep-Dive Insights")
	w.printf("Unique incidents: %d\n", in.UniqueIncidents)

	if len(in.TopNoise) > 0 {
		w.println("\nTop noise contributors:")
		for _, c := range in.TopNoise {
			w.printf("  - '%s': %d events\n", c.ConditionName, c.Count)
		}
	}

	if len(in.Redundant) > 0 {
		w.println("\nRedundancy warning — identical conditions in multiple policies:")
		for _, c := range in.Redundant {
			w.printf("  - '%s' exists in %d different policies\n", c.ConditionName, c.PolicyCount)
		}
	}

	if in.FlappinessKnown {
		w.printf("\nFlappiness rate: %.1f%% of incidents resolve in < 5 mins.\n", in.FlappinessRate)
	} else {
		w.println("\nFlappiness: insufficient temporal data for duration analysis.")
	}

	if len(in.MislabeledCritical) > 0 {
		w.println("\nConditions labeled 'warning' but firing as critical:")
		for _, name := range in.MislabeledCritical {
			w.printf("  - %s\n", name)
		}
	}
}

func writeHeader(w *errWriter, title string) {
	w.println("\n" + strings.Repeat("-", 60))
	w.printf("### %s ###\n\n", strings.ToUpper(title))
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
