package logging

import (
	"log/slog"
	"os"
)

// Init configures the process-wide slog logger. Verbose enables debug output;
// all logging goes to stderr so stdout stays clean for report output.
func Init(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
