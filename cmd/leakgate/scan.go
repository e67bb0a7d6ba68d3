package leakgate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leakgate/leakgate/internal/audit"
	"github.com/leakgate/leakgate/internal/config"
	"github.com/leakgate/leakgate/internal/engine"
	"github.com/leakgate/leakgate/internal/report"
	"github.com/leakgate/leakgate/internal/rules"
	"github.com/spf13/cobra"
)

func (a *app) runScan(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errMissingArgument
	}
	root := args[0]
	if err := engine.ValidateRoot(root); err != nil {
		return err
	}

	// CLI > local > global
	lcfg, err := config.LoadLocal(root)
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return err
	}
	gcfg := a.global
	format := pick(a.flagFormat, lcfg.Format, gcfg.Format)
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "json" && format != "sarif" {
		return fmt.Errorf("unknown --format %q (want text, json or sarif)", format)
	}
	noColor := pickBool(a.flagNoColor, lcfg.NoColor, gcfg.NoColor)
	// the scanned tree never chooses where we write
	auditPath := pick(a.flagAuditLog, nil, gcfg.AuditLog)

	reg, err := rules.Default()
	if err != nil {
		return fmt.Errorf("failed to compile rules: %w", err)
	}
	cfg := engine.Config{
		Root:    root,
		Rules:   reg,
		Workers: pick(a.flagWorkers, lcfg.Workers, gcfg.Workers),
		Logger:  &a.logger,
	}

	if format == "text" {
		fmt.Fprintf(a.stdout, "Scanning %s for hardcoded secrets...\n\n", root)
	}

	res, err := a.scan(cmd.Context(), cfg, auditPath)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		err = report.WriteJSON(a.stdout, res)
	case "sarif":
		err = report.WriteSARIF(a.stdout, root, version, reg, res.Findings)
	default:
		report.PrintText(a.stdout, res, report.PrintOptions{NoColor: noColor})
	}
	if err != nil {
		return err
	}
	a.exitCode = report.ExitCode(res)
	return nil
}

// scan runs the engine, recording the operation and its summary in the audit
// log when one is configured.
func (a *app) scan(ctx context.Context, cfg engine.Config, auditPath string) (engine.Result, error) {
	if auditPath == "" {
		return engine.Run(ctx, cfg)
	}
	alog, err := audit.Open(auditPath)
	if err != nil {
		return engine.Result{}, err
	}
	defer func() {
		if cerr := alog.Close(); cerr != nil {
			a.logger.Warn().Err(cerr).Msg("could not close audit log")
		}
	}()

	op := audit.Instrument("secrets_scan", alog, audit.LoggerHooks{Logger: a.logger})
	start := time.Now()
	res, err := audit.Do(ctx, op, func(ctx context.Context) (engine.Result, error) {
		return engine.Run(ctx, cfg)
	})
	if err != nil {
		return res, err
	}
	if err := alog.LogScan(audit.NewScanRecord(cfg.Root, res, time.Since(start))); err != nil {
		a.logger.Warn().Err(err).Str("path", auditPath).Msg("could not record scan")
	}
	return res, nil
}
