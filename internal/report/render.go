package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/leakgate/leakgate/internal/engine"
)

type PrintOptions struct {
	NoColor bool
}

var rule = strings.Repeat("=", 60)

// Remediation is printed after the findings of a failing scan.
const Remediation = `
# Instead of:
API_KEY = "sk-1234567890abcdef"

# Use:
import os
API_KEY = os.environ.get('API_KEY')
`

// PrintText writes the human-readable report: counts first, then one block
// per finding and the remediation note when anything was found.
func PrintText(w io.Writer, res engine.Result, opts PrintOptions) {
	label := color.New(color.FgRed, color.Bold)
	header := color.New(color.FgYellow, color.Bold)
	ok := color.New(color.FgGreen)
	if opts.NoColor {
		label.DisableColor()
		header.DisableColor()
		ok.DisableColor()
	}

	fmt.Fprintf(w, "Files scanned: %d\n", res.FilesScanned)
	fmt.Fprintf(w, "Potential secrets found: %d\n\n", len(res.Findings))

	if len(res.Findings) == 0 {
		fmt.Fprintln(w, ok.Sprint("No hardcoded secrets detected."))
		return
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, header.Sprint("FINDINGS (Review these before committing)"))
	fmt.Fprintln(w, rule)
	for _, f := range res.Findings {
		fmt.Fprintf(w, "\n%s\n", label.Sprint("["+f.Label+"]"))
		fmt.Fprintf(w, "  File: %s\n", f.Path)
		fmt.Fprintf(w, "  Line: %d\n", f.Line)
		fmt.Fprintf(w, "  Preview: %s\n", f.Preview)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, header.Sprint("RECOMMENDED FIX: Use environment variables"))
	fmt.Fprintln(w, rule)
	fmt.Fprint(w, Remediation)
}
