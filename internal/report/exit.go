package report

import "github.com/leakgate/leakgate/internal/engine"

// Process exit codes. A fatal error before any result exists shares the
// failing code so pipelines treat it like a leak.
const (
	ExitClean    = 0
	ExitFindings = 1
	ExitFatal    = 1
)

// ExitCode is ExitClean exactly when the result holds no findings.
func ExitCode(res engine.Result) int {
	if len(res.Findings) == 0 {
		return ExitClean
	}
	return ExitFindings
}
