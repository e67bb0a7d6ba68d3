package leakgate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/leakgate/leakgate/internal/config"
	"github.com/leakgate/leakgate/internal/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// errMissingArgument is returned when the scan is invoked without a directory.
var errMissingArgument = errors.New("missing directory argument\nUsage: leakgate <directory>")

// app carries the state shared by one invocation of the command tree.
type app struct {
	stdout io.Writer
	stderr io.Writer

	logger   zerolog.Logger
	global   config.FileConfig
	exitCode int

	flagFormat   string
	flagNoColor  bool
	flagWorkers  int
	flagLogLevel string
	flagAuditLog string
}

// Execute runs the leakgate CLI. It should be called by the main package.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, logger: zerolog.Nop()}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return report.ExitFatal
	}
	return a.exitCode
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "leakgate <directory>",
		Short: "Find hardcoded secrets in a source tree",
		Long: "leakgate walks a directory, checks every source and config file line by line " +
			"against a fixed set of secret patterns and reports what it finds.",
		Version:           version,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runScan,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&a.flagNoColor, "no-color", false, "disable colorized output")
	pf.StringVar(&a.flagLogLevel, "log-level", "", "log level: debug | info | warn | error (default warn)")
	pf.StringVar(&a.flagAuditLog, "audit-log", "", "append scan records to this JSONL file")

	f := root.Flags()
	f.StringVarP(&a.flagFormat, "format", "f", "", "output format: text | json | sarif (default text)")
	f.IntVar(&a.flagWorkers, "workers", 0, "scan files with this many workers (0 or 1 = sequential)")

	root.AddCommand(
		newCICmd(a),
		newCompletionCmd(root),
		newConfigCmd(a),
		newRulesCmd(a),
		newHistoryCmd(a),
		newDecisionCmd(a),
	)
	return root
}

// setup loads the global config and builds the logger before any command runs.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	gcfg, err := config.LoadGlobal()
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return err
	}
	a.global = gcfg

	level := pick(a.flagLogLevel, nil, gcfg.LogLevel)
	logger, err := newLogger(a.stderr, level, pickBool(a.flagNoColor, nil, gcfg.NoColor))
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// newLogger writes human-readable logs to w. An empty level means warn.
func newLogger(w io.Writer, level string, noColor bool) (zerolog.Logger, error) {
	lvl := zerolog.WarnLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q", level)
		}
		lvl = parsed
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: noColor}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
