package report

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/JimHagan/nr-alert-analyzer/internal/incident"
)

// Reporter is the interface for output formatters.
type Reporter interface {
	Generate(data Data) error
}

// Data holds everything needed to render a report.
type Data struct {
	Tool        string           `json:"tool"`
	Version     string           `json:"version"`
	RunID       string           `json:"run_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Account     Account          `json:"account"`
	Window      Window           `json:"window"`
	Report      *incident.Report `json:"report"`
	AISummary   string           `json:"ai_summary,omitempty"`
}

// Account identifies the analyzed New Relic account.
type Account struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Window is the resolved analysis time window.
type Window struct {
	Since time.Time `json:"since"`
	Until time.Time `json:"until"`
}

// NewRunID returns a fresh identifier for one report generation.
func NewRunID() string {
	return uuid.NewString()
}

// TextReporter generates human-readable terminal output. TopN limits the
// root-cause and entity rankings; zero means the default of 10.
type TextReporter struct {
	Writer io.Writer
	TopN   int
}

// JSONReporter generates indented JSON output of the full envelope.
type JSONReporter struct {
	Writer io.Writer
}
