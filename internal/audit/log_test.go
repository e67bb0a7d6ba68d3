package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/leakgate/leakgate/internal/engine"
	"github.com/leakgate/leakgate/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogScan_HistoryNewestFirst(t *testing.T) {
	p := filepath.Join(t.TempDir(), "audit.jsonl")
	log, err := Open(p)
	require.NoError(t, err)
	require.NoError(t, log.LogScan(ScanRecord{Root: "first"}))
	require.NoError(t, log.LogEvent(Event{Action: "noise", Status: StatusStarted}))
	require.NoError(t, log.LogScan(ScanRecord{Root: "second"}))
	require.NoError(t, log.Close())

	recs, err := LoadHistory(p)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "second", recs[0].Root)
	assert.Equal(t, "first", recs[1].Root)
	assert.NotEmpty(t, recs[0].ScanID)
	assert.NotEqual(t, recs[0].ScanID, recs[1].ScanID)
	assert.Equal(t, KindScan, recs[0].Kind)
	assert.False(t, recs[0].Timestamp.IsZero())
}

func TestLogScan_AfterClose(t *testing.T) {
	log, err := Open(filepath.Join(t.TempDir(), "audit.jsonl"))
	require.NoError(t, err)
	require.NoError(t, log.Close())
	assert.Error(t, log.LogScan(ScanRecord{}))
}

func TestLoadHistory_Missing(t *testing.T) {
	_, err := LoadHistory(filepath.Join(t.TempDir(), "none.jsonl"))
	assert.Error(t, err)
}

func TestNewScanRecord(t *testing.T) {
	var fs []types.Finding
	for i := 0; i < 12; i++ {
		fs = append(fs, types.Finding{Path: "a.py", Line: i + 1, RuleID: "token", Label: "Hardcoded token"})
	}
	fs = append(fs, types.Finding{Path: "b.py", Line: 1, RuleID: "password", Label: "Hardcoded password"})
	res := engine.Result{Findings: fs, FilesScanned: 2}

	rec := NewScanRecord("/repo", res, 1500*time.Millisecond)
	assert.Equal(t, 13, rec.TotalFindings)
	assert.Equal(t, 2, rec.FilesScanned)
	assert.Equal(t, map[string]int{"Hardcoded token": 12, "Hardcoded password": 1}, rec.LabelCounts)
	assert.Len(t, rec.TopFindings, 10)
	assert.Equal(t, res.Fingerprint(), rec.Fingerprint)
	assert.Equal(t, "1.5s", rec.Duration)
	assert.Equal(t, []string{"Hardcoded password", "Hardcoded token"}, rec.SortedLabels())
}
