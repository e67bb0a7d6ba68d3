package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/leakgate/leakgate/internal/engine"
	"github.com/leakgate/leakgate/internal/jsonl"
)

// Record kinds stored in the log.
const (
	KindScan      = "scan"
	KindOperation = "operation"
)

// ScanRecord summarises one completed scan.
type ScanRecord struct {
	Kind          string           `json:"kind"`
	Timestamp     time.Time        `json:"timestamp"`
	ScanID        string           `json:"scan_id"`
	Root          string           `json:"root"`
	FilesScanned  int              `json:"files_scanned"`
	TotalFindings int              `json:"total_findings"`
	LabelCounts   map[string]int   `json:"label_counts"`
	Fingerprint   string           `json:"fingerprint"`
	Duration      string           `json:"duration"`
	TopFindings   []FindingSummary `json:"top_findings,omitempty"`
}

// FindingSummary locates a finding without repeating the matched text.
type FindingSummary struct {
	Path  string `json:"path"`
	Label string `json:"label"`
	Line  int    `json:"line"`
}

// Log is an open audit log.
type Log struct {
	out *jsonl.Appender
}

// Open opens (creating if needed) the audit log at path.
func Open(path string) (*Log, error) {
	out, err := jsonl.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	return &Log{out: out}, nil
}

// Path returns the log file location.
func (a *Log) Path() string { return a.out.Path() }

// Close releases the log. Later writes fail.
func (a *Log) Close() error { return a.out.Close() }

// LogScan appends a scan record, filling in kind, id and timestamp if unset.
func (a *Log) LogScan(record ScanRecord) error {
	record.Kind = KindScan
	if record.ScanID == "" {
		record.ScanID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	if err := a.out.Append(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// LogEvent appends an operation event.
func (a *Log) LogEvent(ev Event) error {
	ev.Kind = KindOperation
	if err := a.out.Append(ev); err != nil {
		return fmt.Errorf("failed to write audit event: %w", err)
	}
	return nil
}

// Before, After and OnFailure let a Log serve directly as operation hooks.
func (a *Log) Before(ev Event) error { return a.LogEvent(ev) }

func (a *Log) After(ev Event) error { return a.LogEvent(ev) }

func (a *Log) OnFailure(ev Event, _ error) error { return a.LogEvent(ev) }

// LoadHistory returns the scan records at path, newest first.
func LoadHistory(path string) ([]ScanRecord, error) {
	var records []ScanRecord
	err := jsonl.Read(path, func(raw json.RawMessage) error {
		var head struct {
			Kind string `json:"kind"`
		}
		if err := json.Unmarshal(raw, &head); err != nil || head.Kind != KindScan {
			return nil
		}
		var rec ScanRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// ErrNoHistory is returned when the log has no scan records.
var ErrNoHistory = errors.New("no scans recorded")

const topFindings = 10

// NewScanRecord builds a record from a finished scan.
func NewScanRecord(root string, res engine.Result, duration time.Duration) ScanRecord {
	counts := make(map[string]int)
	for _, f := range res.Findings {
		counts[f.Label]++
	}
	top := make([]FindingSummary, 0, topFindings)
	for i, f := range res.Findings {
		if i >= topFindings {
			break
		}
		top = append(top, FindingSummary{Path: f.Path, Label: f.Label, Line: f.Line})
	}
	return ScanRecord{
		Root:          root,
		FilesScanned:  res.FilesScanned,
		TotalFindings: len(res.Findings),
		LabelCounts:   counts,
		Fingerprint:   res.Fingerprint(),
		Duration:      duration.String(),
		TopFindings:   top,
	}
}

// SortedLabels returns the record's labels ordered by name.
func (r ScanRecord) SortedLabels() []string {
	out := make([]string, 0, len(r.LabelCounts))
	for l := range r.LabelCounts {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
