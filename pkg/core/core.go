package core

import (
	"context"

	"github.com/leakgate/leakgate/internal/engine"
	"github.com/leakgate/leakgate/internal/rules"
	"github.com/leakgate/leakgate/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type Config = engine.Config
type Result = engine.Result
type Finding = types.Finding

// ErrInvalidRoot matches the error returned when the scan root is not a
// readable directory.
var ErrInvalidRoot = engine.ErrInvalidRoot

// Scan is the stable entrypoint for other programs.
func Scan(ctx context.Context, cfg Config) ([]Finding, error) {
	return engine.Scan(ctx, cfg)
}

// ScanWithStats returns findings together with the number of files scanned.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	return engine.Run(ctx, cfg)
}

// RuleIDs returns the IDs of the built-in rules in evaluation order.
func RuleIDs() []string {
	reg, err := rules.Default()
	if err != nil {
		return nil
	}
	ids := make([]string, 0, reg.Len())
	for _, r := range reg.Rules() {
		ids = append(ids, r.ID)
	}
	return ids
}
