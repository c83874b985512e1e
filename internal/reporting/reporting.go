// File: internal/reporting/reporting.go

// Package reporting records the outcome of a check run and renders it as a
// JSON report for CI consumption.
package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Status classifies a step or run outcome.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Step is the recorded outcome of one named step in the flow.
type Step struct {
	Name       string        `json:"name"`
	Status     Status        `json:"status"`
	Duration   time.Duration `json:"duration_ns"`
	Error      string        `json:"error,omitempty"`
	Screenshot string        `json:"screenshot,omitempty"`
}

// Report is the full record of one check run.
type Report struct {
	RunID      string    `json:"run_id"`
	Browser    string    `json:"browser"`
	Device     string    `json:"device"`
	Topic      string    `json:"topic"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Status     Status    `json:"status"`
	Steps      []Step    `json:"steps"`
}

// Recorder accumulates step outcomes for a single run. It is not safe for
// concurrent use; a run executes its steps sequentially.
type Recorder struct {
	report Report
	now    func() time.Time
}

// NewRecorder starts a report for one run, stamping it with a fresh run ID.
func NewRecorder(browser, device, topic string) *Recorder {
	return newRecorder(browser, device, topic, time.Now)
}

func newRecorder(browser, device, topic string, now func() time.Time) *Recorder {
	return &Recorder{
		report: Report{
			RunID:     uuid.New().String(),
			Browser:   browser,
			Device:    device,
			Topic:     topic,
			StartedAt: now(),
			Status:    StatusPassed,
		},
		now: now,
	}
}

// RunID returns the identifier stamped on this run.
func (r *Recorder) RunID() string {
	return r.report.RunID
}

// RecordStep appends a step outcome. A failed step marks the whole run
// failed; later passing steps do not clear that.
func (r *Recorder) RecordStep(step Step) {
	r.report.Steps = append(r.report.Steps, step)
	if step.Status == StatusFailed {
		r.report.Status = StatusFailed
	}
}

// Finalize stamps the finish time and returns the completed report.
func (r *Recorder) Finalize() Report {
	r.report.FinishedAt = r.now()
	return r.report
}

// WriteJSON renders the report, indented, to w.
func WriteJSON(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// WriteFile renders the report to <dir>/report_<run id>.json and returns the
// written path.
func WriteFile(dir string, report Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("report_%s.json", report.RunID))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, report); err != nil {
		return "", err
	}
	return path, nil
}
