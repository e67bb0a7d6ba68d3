package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/leakgate/leakgate/internal/rules"
	"github.com/leakgate/leakgate/internal/types"
	"github.com/rs/zerolog"
	"github.com/wandb/parallel"
)

// Config controls one scan invocation. An empty (nil or zero-length)
// Extensions or SkipDirs uses the built-in set; a nil Rules uses
// rules.Default.
type Config struct {
	Root       string
	Extensions map[string]bool
	SkipDirs   map[string]bool
	Rules      *rules.Registry
	// Workers > 1 scans files concurrently. Output order is unchanged.
	Workers  int
	Logger   *zerolog.Logger
	Progress func()
}

// Result contains findings in traversal order and the eligible file count.
type Result struct {
	Findings     []types.Finding
	FilesScanned int
}

// Fingerprint is a stable digest of the result content. Two scans of an
// unchanged tree produce the same value.
func (r Result) Fingerprint() string {
	d := xxhash.New()
	_, _ = d.WriteString(strconv.Itoa(r.FilesScanned))
	for _, f := range r.Findings {
		_, _ = d.WriteString("\x00" + f.Path + "\x00" + strconv.Itoa(f.Line) + "\x00" + f.RuleID + "\x00" + f.Preview)
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

func (c Config) logger() zerolog.Logger {
	if c.Logger == nil {
		return zerolog.Nop()
	}
	return *c.Logger
}

// Scan runs a scan and returns only findings.
func Scan(ctx context.Context, cfg Config) ([]types.Finding, error) {
	res, err := Run(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return res.Findings, nil
}

// Run validates the root, walks it and scans every eligible file. A file that
// cannot be read is logged; it still counts as scanned and keeps the findings
// read before the failure.
func Run(ctx context.Context, cfg Config) (Result, error) {
	var res Result
	if err := ValidateRoot(cfg.Root); err != nil {
		return res, err
	}
	reg := cfg.Rules
	if reg == nil {
		var err error
		if reg, err = rules.Default(); err != nil {
			return res, fmt.Errorf("failed to compile rules: %w", err)
		}
	}
	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions()
	}
	skip := cfg.SkipDirs
	if len(skip) == 0 {
		skip = DefaultSkipDirs()
	}
	log := cfg.logger()
	filter := NewPathFilter(exts)
	walker := Walker{SkipDirs: skip, Logger: log}

	if cfg.Workers > 1 {
		return runParallel(ctx, cfg, reg, filter, walker, log)
	}

	err := walker.Walk(ctx, cfg.Root, func(p string) error {
		if !filter.IsEligible(p) {
			return nil
		}
		res.FilesScanned++
		fs, err := ScanFile(p, reg)
		record(log, p, fs, err)
		res.Findings = append(res.Findings, fs...)
		if cfg.Progress != nil {
			cfg.Progress()
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

type fileOutcome struct {
	findings []types.Finding
	err      error
}

func runParallel(ctx context.Context, cfg Config, reg *rules.Registry, filter PathFilter, walker Walker, log zerolog.Logger) (Result, error) {
	var paths []string
	err := walker.Walk(ctx, cfg.Root, func(p string) error {
		if filter.IsEligible(p) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	slots := make([]fileOutcome, len(paths))
	group := parallel.Limited(ctx, cfg.Workers)
	for i, p := range paths {
		group.Go(func(ctx context.Context) {
			if ctx.Err() != nil {
				return
			}
			fs, err := ScanFile(p, reg)
			slots[i] = fileOutcome{findings: fs, err: err}
		})
	}
	group.Wait()
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// merge in walk order so output matches a sequential scan
	res := Result{FilesScanned: len(paths)}
	for i, p := range paths {
		record(log, p, slots[i].findings, slots[i].err)
		res.Findings = append(res.Findings, slots[i].findings...)
		if cfg.Progress != nil {
			cfg.Progress()
		}
	}
	return res, nil
}

func record(log zerolog.Logger, path string, fs []types.Finding, err error) {
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("could not scan file")
		return
	}
	log.Debug().Str("path", path).Int("findings", len(fs)).Msg("scanned file")
}

// ValidateRoot reports an *InvalidRootError unless root names an existing directory.
func ValidateRoot(root string) error {
	if root == "" {
		return &InvalidRootError{Root: root, Reason: "no path given"}
	}
	st, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &InvalidRootError{Root: root, Reason: "does not exist", Err: err}
		}
		return &InvalidRootError{Root: root, Reason: "cannot stat", Err: err}
	}
	if !st.IsDir() {
		return &InvalidRootError{Root: root, Reason: "not a directory"}
	}
	return nil
}
