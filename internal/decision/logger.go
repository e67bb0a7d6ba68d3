package decision

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/leakgate/leakgate/internal/jsonl"
	"github.com/rs/zerolog"
)

// FileName is the log file created inside the decision directory.
const FileName = "ai_decisions.log"

// Decision is the input to Logger.Log.
type Decision struct {
	Model      string
	Input      Value
	Output     Value
	Confidence float64
	// RawInput stores Input verbatim instead of its hash. Only use it for
	// non-sensitive data.
	RawInput bool
	Context  Map
}

// Record is the line written for each decision.
type Record struct {
	Timestamp      string  `json:"timestamp"`
	Model          string  `json:"model"`
	InputReference Value   `json:"input_reference"`
	InputHashed    bool    `json:"input_hashed"`
	Decision       Value   `json:"decision"`
	Confidence     float64 `json:"confidence"`
	Reviewable     bool    `json:"reviewable"`
	Context        Map     `json:"context"`
}

// Logger appends decision records to FileName in its directory.
type Logger struct {
	out *jsonl.Appender
	log zerolog.Logger
	now func() time.Time
}

// Open creates dir if needed and opens the decision log for appending.
func Open(dir string, log zerolog.Logger) (*Logger, error) {
	out, err := jsonl.Open(filepath.Join(dir, FileName))
	if err != nil {
		return nil, fmt.Errorf("failed to open decision log: %w", err)
	}
	return &Logger{out: out, log: log, now: time.Now}, nil
}

// Path returns the log file location.
func (l *Logger) Path() string { return l.out.Path() }

// Close releases the log.
func (l *Logger) Close() error { return l.out.Close() }

// Log validates d, writes its record and returns it.
func (l *Logger) Log(d Decision) (Record, error) {
	if d.Model == "" {
		return Record{}, errors.New("model name is required")
	}
	if math.IsNaN(d.Confidence) || d.Confidence < 0 || d.Confidence > 1 {
		return Record{}, fmt.Errorf("confidence %v outside [0,1]", d.Confidence)
	}
	input := valueOrNull(d.Input)
	ctx := d.Context
	if ctx == nil {
		ctx = Map{}
	}
	rec := Record{
		Timestamp:   l.now().UTC().Format("2006-01-02T15:04:05.000000Z"),
		Model:       d.Model,
		InputHashed: !d.RawInput,
		Decision:    valueOrNull(d.Output),
		Confidence:  math.Round(d.Confidence*1e4) / 1e4,
		Reviewable:  true,
		Context:     ctx,
	}
	if d.RawInput {
		rec.InputReference = input
	} else {
		rec.InputReference = String(Hash(input))
	}
	if err := l.out.Append(rec); err != nil {
		return Record{}, fmt.Errorf("failed to write decision: %w", err)
	}
	l.log.Debug().Str("model", rec.Model).Bool("input_hashed", rec.InputHashed).Msg("decision logged")
	return rec, nil
}

func valueOrNull(v Value) Value {
	if v == nil {
		return Null{}
	}
	return v
}
