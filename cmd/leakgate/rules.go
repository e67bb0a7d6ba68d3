package leakgate

import (
	"fmt"

	"github.com/leakgate/leakgate/internal/rules"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newRulesCmd(a *app) *cobra.Command {
	var idsOnly bool
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the built-in secret patterns",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			reg, err := rules.Default()
			if err != nil {
				return err
			}
			if idsOnly {
				for _, r := range reg.Rules() {
					fmt.Fprintln(a.stdout, r.ID)
				}
				return nil
			}
			rows := make([][]string, 0, reg.Len())
			for _, r := range reg.Rules() {
				rows = append(rows, []string{r.ID, r.Label, r.Pattern()})
			}
			table := tablewriter.NewWriter(a.stdout)
			table.Header("ID", "Label", "Pattern")
			if err := table.Bulk(rows); err != nil {
				return err
			}
			return table.Render()
		},
	}
	cmd.Flags().BoolVar(&idsOnly, "ids", false, "print rule IDs only")
	return cmd
}
