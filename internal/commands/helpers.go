package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/JimHagan/nr-alert-analyzer/internal/config"
	"github.com/JimHagan/nr-alert-analyzer/internal/nerdgraph"
	"github.com/JimHagan/nr-alert-analyzer/internal/report"
)

const windowTimeLayout = "2006-01-02 15:04:05"

// enhanceError wraps an error with context and suggestions for common
// NerdGraph issues.
func enhanceError(action string, err error) error {
	msg := err.Error()

	var hint string
	switch {
	case strings.Contains(msg, "status 401") || strings.Contains(msg, "API key"):
		hint = "Check the API key: use a User key (NRAK-...), pass --api-key or set NEW_RELIC_API_KEY"
	case strings.Contains(msg, "status 403"):
		hint = "The API key lacks access to this account. Run 'nr-alert-analyzer accounts' to list accessible accounts"
	case strings.Contains(msg, "status 429") || strings.Contains(msg, "rate limit"):
		hint = "NerdGraph rate limit hit. Narrow the window with --days or lower --limit"
	case strings.Contains(msg, "NRQL Syntax Error"):
		hint = "The generated NRQL was rejected. Check --since/--until formats (YYYY-MM-DD HH:MM:SS)"
	case strings.Contains(msg, "no such host") || strings.Contains(msg, "connection refused"):
		hint = "Cannot reach the NerdGraph endpoint. Check network access and the region setting (us or eu)"
	}

	if hint != "" {
		return fmt.Errorf("%s: %w\n  hint: %s", action, err, hint)
	}
	return fmt.Errorf("%s: %w", action, err)
}

// resolveEndpoint maps the region setting to a NerdGraph URL.
func resolveEndpoint(region string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(region)) {
	case "", "us":
		return nerdgraph.EndpointUS, nil
	case "eu":
		return nerdgraph.EndpointEU, nil
	default:
		return "", fmt.Errorf("unsupported region %q (use us or eu)", region)
	}
}

// resolveWindow computes the analysis window. Explicit --since/--until values
// win; otherwise the window ends now and starts days ago. This is the only
// place wall-clock time enters the pipeline.
func resolveWindow(since, until string, days int) (time.Time, time.Time, error) {
	end := time.Now().UTC()
	if until != "" {
		t, err := time.Parse(windowTimeLayout, until)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --until: %w", err)
		}
		end = t.UTC()
	}

	if days <= 0 {
		days = 7
	}
	start := end.AddDate(0, 0, -days)
	if since != "" {
		t, err := time.Parse(windowTimeLayout, since)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --since: %w", err)
		}
		start = t.UTC()
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("window start %s is not before end %s", start.Format(windowTimeLayout), end.Format(windowTimeLayout))
	}
	return start, end, nil
}

// resolveAPIKey picks the API key: explicit flag, then environment, then an
// interactive selection from the config's named keys, then a no-echo prompt.
func resolveAPIKey(flagKey string, cfg config.Config) (string, error) {
	if flagKey != "" {
		return flagKey, nil
	}
	if key := os.Getenv("NEW_RELIC_API_KEY"); key != "" {
		return key, nil
	}
	if len(cfg.APIKeys) > 0 {
		return selectAPIKey(cfg.APIKeys, os.Stdin, os.Stderr)
	}
	return promptAPIKey()
}

// selectAPIKey prompts the user to pick one of the named keys from config.
// A single key is used without prompting.
func selectAPIKey(keys map[string]string, in io.Reader, out io.Writer) (string, error) {
	names := make([]string, 0, len(keys))
	for name := range keys {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) == 1 {
		return keys[names[0]], nil
	}

	fmt.Fprintln(out, "Select an API key to use:")
	for i, name := range names {
		fmt.Fprintf(out, "  %d. %s\n", i+1, name)
	}
	fmt.Fprintf(out, "Enter a number (1-%d): ", len(names))

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read key selection: %w", err)
	}

	var choice int
	if _, err := fmt.Sscanf(strings.TrimSpace(line), "%d", &choice); err != nil || choice < 1 || choice > len(names) {
		return "", fmt.Errorf("invalid selection %q", strings.TrimSpace(line))
	}
	return keys[names[choice-1]], nil
}

// promptAPIKey reads the key from the terminal without echo, falling back to
// a plain line read for piped input.
func promptAPIKey() (string, error) {
	fd := syscall.Stdin
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "New Relic API key: ")
		keyBytes, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read API key: %w", err)
		}
		key := strings.TrimSpace(string(keyBytes))
		if key == "" {
			return "", fmt.Errorf("no API key provided")
		}
		return key, nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read API key: %w", err)
	}
	key := strings.TrimSpace(line)
	if key == "" {
		return "", fmt.Errorf("no API key provided")
	}
	return key, nil
}

func selectReporter(format, outputFile string, topN int) (report.Reporter, error) {
	w := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return nil, fmt.Errorf("create output file: %w", err)
		}
		w = f
	}

	switch format {
	case "json":
		return &report.JSONReporter{Writer: w}, nil
	case "text":
		return &report.TextReporter{Writer: w, TopN: topN}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use text or json)", format)
	}
}
