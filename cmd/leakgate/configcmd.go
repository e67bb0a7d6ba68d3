package leakgate

import (
	"fmt"
	"os"
	"strings"

	"github.com/leakgate/leakgate/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type configInitFlags struct {
	output      string
	format      string
	noColor     bool
	workers     int
	logLevel    string
	auditLog    string
	decisionDir string
}

func newConfigCmd(a *app) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}

	var f configInitFlags
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .leakgate.yml with the selected options",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runConfigInit(f)
		},
	}
	initCmd.Flags().StringVar(&f.output, "output", ".leakgate.yml", "output file path")
	initCmd.Flags().StringVar(&f.format, "format", "", "default output format: text | json | sarif")
	initCmd.Flags().BoolVar(&f.noColor, "no-color", false, "disable color output by default")
	initCmd.Flags().IntVar(&f.workers, "workers", 0, "default worker count")
	initCmd.Flags().StringVar(&f.logLevel, "log-level", "", "default log level")
	initCmd.Flags().StringVar(&f.auditLog, "audit-log", "", "default audit log path")
	initCmd.Flags().StringVar(&f.decisionDir, "decision-dir", "", "default decision log directory")
	cfgCmd.AddCommand(initCmd)
	return cfgCmd
}

func (a *app) runConfigInit(f configInitFlags) error {
	fc := config.FileConfig{
		Format:      optStrPtr(f.format),
		NoColor:     boolPtr(f.noColor),
		Workers:     intPtr(f.workers),
		LogLevel:    optStrPtr(f.logLevel),
		AuditLog:    optStrPtr(f.auditLog),
		DecisionDir: optStrPtr(f.decisionDir),
	}
	if err := fc.Validate(); err != nil {
		return err
	}

	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.output, b, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Wrote", f.output)
	return nil
}

func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func boolPtr(v bool) *bool { return &v }
