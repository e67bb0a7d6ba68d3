package leakgate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/leakgate/leakgate/internal/audit"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show scans recorded in the audit log",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path := pick(a.flagAuditLog, nil, a.global.AuditLog)
			if path == "" {
				return errors.New("no audit log configured (pass --audit-log or set audit_log in config)")
			}
			records, err := audit.LoadHistory(path)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("%s: %w", path, audit.ErrNoHistory)
				}
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("%s: %w", path, audit.ErrNoHistory)
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}
			if asJSON {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			return renderHistory(a, records)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many scans (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit records as JSON")
	return cmd
}

func renderHistory(a *app, records []audit.ScanRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		labels := make([]string, 0, len(r.LabelCounts))
		for _, l := range r.SortedLabels() {
			labels = append(labels, fmt.Sprintf("%s=%d", l, r.LabelCounts[l]))
		}
		rows = append(rows, []string{
			r.Timestamp.Local().Format(time.DateTime),
			r.Root,
			strconv.Itoa(r.FilesScanned),
			strconv.Itoa(r.TotalFindings),
			strings.Join(labels, ", "),
			r.Fingerprint,
		})
	}
	table := tablewriter.NewWriter(a.stdout)
	table.Header("Time", "Root", "Files", "Findings", "Labels", "Fingerprint")
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
