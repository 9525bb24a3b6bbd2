package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/ghgcalc/internal/config"
)

func newFactorsCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "factors",
		Short: "Show the active emission factor data set",
		Example: `  ghgcalc factors
  ghgcalc --factors custom.yaml factors --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := a.outputFormat(output)
			if err != nil {
				return err
			}
			snap := a.table.Snapshot()
			if format == config.FormatJSON {
				return writeJSON(cmd.OutOrStdout(), snap)
			}
			return renderFactors(cmd.OutOrStdout(), snap)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json (default: table on a terminal, json otherwise)")
	return cmd
}
