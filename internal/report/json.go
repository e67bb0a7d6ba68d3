package report

import (
	"encoding/json"
	"io"

	"github.com/leakgate/leakgate/internal/engine"
	"github.com/leakgate/leakgate/internal/types"
)

type jsonReport struct {
	FilesScanned  int             `json:"files_scanned"`
	FindingsCount int             `json:"findings_count"`
	Fingerprint   string          `json:"fingerprint"`
	Findings      []types.Finding `json:"findings"`
}

// WriteJSON writes the result as an indented JSON document.
func WriteJSON(w io.Writer, res engine.Result) error {
	fs := res.Findings
	if fs == nil {
		fs = []types.Finding{} // no `null` in JSON
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		FilesScanned:  res.FilesScanned,
		FindingsCount: len(fs),
		Fingerprint:   res.Fingerprint(),
		Findings:      fs,
	})
}
