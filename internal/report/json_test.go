package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/leakgate/leakgate/internal/engine"
	"github.com/leakgate/leakgate/internal/types"
)

func TestWriteJSON_EmptyFindingsIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, engine.Result{FilesScanned: 1}); err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v; body=%s", err, buf.String())
	}
	arr, ok := doc["findings"].([]any)
	if !ok || len(arr) != 0 {
		t.Fatalf("expected empty findings array, got %#v", doc["findings"])
	}
	if doc["files_scanned"].(float64) != 1 {
		t.Fatalf("expected files_scanned=1, got %v", doc["files_scanned"])
	}
	if fp, _ := doc["fingerprint"].(string); len(fp) != 16 {
		t.Fatalf("expected 16 char fingerprint, got %q", fp)
	}
}

func TestWriteJSON_Findings(t *testing.T) {
	res := engine.Result{FilesScanned: 1, Findings: []types.Finding{{Path: "a.py", Line: 2, RuleID: "api_key", Label: "Hardcoded API key", Preview: `API_KEY = "sk"`}}}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, res); err != nil {
		t.Fatal(err)
	}
	var doc struct {
		FindingsCount int             `json:"findings_count"`
		Findings      []types.Finding `json:"findings"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.FindingsCount != 1 || doc.Findings[0] != res.Findings[0] {
		t.Fatalf("unexpected document: %+v", doc)
	}
}
