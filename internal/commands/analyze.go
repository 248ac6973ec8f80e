package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/JimHagan/nr-alert-analyzer/internal/ai"
	"github.com/JimHagan/nr-alert-analyzer/internal/config"
	"github.com/JimHagan/nr-alert-analyzer/internal/incident"
	"github.com/JimHagan/nr-alert-analyzer/internal/nerdgraph"
	"github.com/JimHagan/nr-alert-analyzer/internal/report"
)

var analyzeFlags struct {
	apiKey          string
	accountID       int
	days            int
	since           string
	until           string
	limit           int
	excludeWarnings bool
	topN            int
	format          string
	outputFile      string
	exportCSV       string
	summaryOnly     bool
	aiSummary       bool
	timeout         time.Duration
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Fetch and analyze incident events for an account",
	Long: `Fetch NrAiIncident events for the given account and time window, then report
incident patterns: daily and hourly distribution, severity breakdown,
root-cause ranking, and entity hotspots with per-condition detail.

With --ai-summary, a reduced payload (condition, policy, entity, priority,
opened-at per event; aggregates only with --summary-only) is sent to a
chat-completions endpoint for a natural-language summary.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFlags.apiKey, "api-key", "", "New Relic User API key (default: NEW_RELIC_API_KEY or config)")
	analyzeCmd.Flags().IntVar(&analyzeFlags.accountID, "account-id", 0, "New Relic account ID")
	analyzeCmd.Flags().IntVar(&analyzeFlags.days, "days", 7, "Window length in days, ending now")
	analyzeCmd.Flags().StringVar(&analyzeFlags.since, "since", "", "Window start (YYYY-MM-DD HH:MM:SS UTC, overrides --days)")
	analyzeCmd.Flags().StringVar(&analyzeFlags.until, "until", "", "Window end (YYYY-MM-DD HH:MM:SS UTC, default: now)")
	analyzeCmd.Flags().IntVar(&analyzeFlags.limit, "limit", 100000, "Maximum incident events to fetch")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.excludeWarnings, "exclude-warnings", false, "Exclude warning-priority incidents at fetch time")
	analyzeCmd.Flags().IntVarP(&analyzeFlags.topN, "top-n", "n", 10, "Entries shown per ranking in text output")
	analyzeCmd.Flags().StringVar(&analyzeFlags.format, "format", "text", "Output format: text or json")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.outputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeFlags.exportCSV, "export-csv", "", "Also export normalized events to this CSV file")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.summaryOnly, "summary-only", false, "Send only aggregates to the AI endpoint, no event rows")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.aiSummary, "ai-summary", false, "Generate an AI summary of the report")
	analyzeCmd.Flags().DurationVar(&analyzeFlags.timeout, "timeout", 5*time.Minute, "Overall fetch timeout")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if analyzeFlags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, analyzeFlags.timeout)
		defer cancel()
	}

	cfg, err := config.Load(".")
	if err != nil {
		slog.Warn("Failed to load config file", "error", err)
	}
	applyAnalyzeConfigDefaults(cfg)

	accountID := analyzeFlags.accountID
	if accountID == 0 {
		accountID = cfg.AccountID
	}
	if accountID == 0 {
		return fmt.Errorf("--account-id is required (or set account_id in .nr-alert-analyzer.yaml)")
	}

	key, err := resolveAPIKey(analyzeFlags.apiKey, cfg)
	if err != nil {
		return err
	}

	endpoint, err := resolveEndpoint(cfg.Region)
	if err != nil {
		return err
	}

	since, until, err := resolveWindow(analyzeFlags.since, analyzeFlags.until, analyzeFlags.days)
	if err != nil {
		return err
	}

	client := nerdgraph.NewClient(endpoint, key)

	accountName, err := client.AccountName(ctx, accountID)
	if err != nil {
		slog.Warn("Failed to resolve account name", "error", err)
		accountName = fmt.Sprintf("ACCOUNT_%d", accountID)
	}
	slog.Info("Fetching incidents",
		"account", accountName,
		"since", since.Format(windowTimeLayout),
		"until", until.Format(windowTimeLayout),
		"limit", analyzeFlags.limit)

	results, err := client.FetchIncidents(ctx, accountID, nerdgraph.FetchOptions{
		Since:           since,
		Until:           until,
		Limit:           analyzeFlags.limit,
		ExcludeWarnings: analyzeFlags.excludeWarnings,
	})
	if err != nil {
		return enhanceError("fetch incidents", err)
	}
	slog.Info("Fetched incident events", "count", len(results))

	rep, err := incident.Analyze(results)
	if err != nil {
		return enhanceError("analyze incidents", err)
	}
	if rep.InvalidTimestamps > 0 {
		slog.Warn("Events excluded from temporal views", "invalid_timestamps", rep.InvalidTimestamps)
	}

	if analyzeFlags.exportCSV != "" {
		if err := exportCSV(analyzeFlags.exportCSV, rep.Events); err != nil {
			return err
		}
		slog.Info("Exported normalized events", "path", analyzeFlags.exportCSV, "rows", len(rep.Events))
	}

	data := report.Data{
		Tool:        "nr-alert-analyzer",
		Version:     version,
		RunID:       report.NewRunID(),
		GeneratedAt: time.Now().UTC(),
		Account:     report.Account{ID: accountID, Name: accountName},
		Window:      report.Window{Since: since, Until: until},
		Report:      rep,
	}

	if analyzeFlags.aiSummary {
		payload := incident.BuildPayload(rep, analyzeFlags.summaryOnly)
		aiKey := cfg.AI.APIKey
		if aiKey == "" {
			aiKey = os.Getenv("OPENAI_API_KEY")
		}
		summarizer := ai.NewClient(cfg.AI.Endpoint, cfg.AI.Model, aiKey)
		summary, err := summarizer.Summarize(ctx, payload)
		if err != nil {
			slog.Warn("AI summarization failed", "error", err)
		} else {
			data.AISummary = summary
		}
	}

	reporter, err := selectReporter(analyzeFlags.format, analyzeFlags.outputFile, analyzeFlags.topN)
	if err != nil {
		return err
	}
	return reporter.Generate(data)
}

func applyAnalyzeConfigDefaults(cfg config.Config) {
	if analyzeFlags.format == "text" && cfg.Format != "" {
		analyzeFlags.format = cfg.Format
	}
	if analyzeFlags.days == 7 && cfg.Days > 0 {
		analyzeFlags.days = cfg.Days
	}
	if analyzeFlags.limit == 100000 && cfg.Limit > 0 {
		analyzeFlags.limit = cfg.Limit
	}
	if analyzeFlags.topN == 10 && cfg.TopN > 0 {
		analyzeFlags.topN = cfg.TopN
	}
	if !analyzeFlags.excludeWarnings && cfg.ExcludeWarnings {
		analyzeFlags.excludeWarnings = true
	}
}

func exportCSV(path string, events []incident.Event) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	exporter := &report.CSVExporter{Writer: f}
	if err := exporter.Export(events); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}
