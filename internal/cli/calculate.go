package cli

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/rshade/ghgcalc/internal/carbon"
	"github.com/rshade/ghgcalc/internal/config"
)

// reportEnvelope wraps a report with identifying metadata.
type reportEnvelope struct {
	ReportID       string              `json:"report_id"`
	GeneratedAt    time.Time           `json:"generated_at"`
	FactorsVersion string              `json:"factors_version"`
	Report         carbon.ReportOutput `json:"report"`
}

type calcFlags struct {
	input  string
	output string
}

func (f *calcFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "request file (.json, .yaml, .yml) or - for JSON on stdin")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output format: table or json (default: table on a terminal, json otherwise)")
	_ = cmd.MarkFlagRequired("input")
}

// runCalc is the shared body of the scope commands: decode the request,
// compute it, and print it as JSON or through render.
func runCalc[In, Out any](
	cmd *cobra.Command,
	a *app,
	flags *calcFlags,
	calc func(In) (Out, error),
	render func(cmd *cobra.Command, out Out) error,
) error {
	format, err := a.outputFormat(flags.output)
	if err != nil {
		return err
	}

	var in In
	if err := readInput(flags.input, cmd.InOrStdin(), &in); err != nil {
		return err
	}

	start := time.Now()
	out, err := calc(in)
	if err != nil {
		return err
	}
	a.logger.Debug().
		Str("command", cmd.Name()).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("calculation completed")

	if format == config.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	return render(cmd, out)
}

func newScope1Cmd(a *app) *cobra.Command {
	var flags calcFlags
	cmd := &cobra.Command{
		Use:   "scope1",
		Short: "Calculate Scope 1 direct emissions",
		Long:  "Calculates emissions from stationary combustion, fleet fuel and refrigerant leakage.",
		Example: `  ghgcalc scope1 --input scope1.yaml
  ghgcalc scope1 --input scope1.json --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd, a, &flags, a.calc.Scope1, func(cmd *cobra.Command, out carbon.Scope1Output) error {
				return renderScope1(cmd.OutOrStdout(), out)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newScope2Cmd(a *app) *cobra.Command {
	var flags calcFlags
	cmd := &cobra.Command{
		Use:     "scope2",
		Short:   "Calculate Scope 2 purchased-energy emissions",
		Long:    "Calculates emissions from purchased electricity and district heating.",
		Example: `  ghgcalc scope2 --input scope2.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd, a, &flags, a.calc.Scope2, func(cmd *cobra.Command, out carbon.Scope2Output) error {
				return renderScope2(cmd.OutOrStdout(), out)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newScope3Cmd(a *app) *cobra.Command {
	var flags calcFlags
	cmd := &cobra.Command{
		Use:     "scope3",
		Short:   "Calculate Scope 3 value-chain emissions",
		Long:    "Calculates emissions from purchased goods, waste and business travel.",
		Example: `  ghgcalc scope3 --input scope3.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd, a, &flags, a.calc.Scope3, func(cmd *cobra.Command, out carbon.Scope3Output) error {
				return renderScope3(cmd.OutOrStdout(), out)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newReportCmd(a *app) *cobra.Command {
	var flags calcFlags
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Calculate all three scopes",
		Long:  "Calculates Scope 1, 2 and 3 together and prints them with a report ID and the factor data set version.",
		Example: `  ghgcalc report --input inventory.yaml
  ghgcalc report --input inventory.json --output json > report.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			calc := func(in carbon.ReportInput) (reportEnvelope, error) {
				out, err := a.calc.Report(cmd.Context(), in)
				if err != nil {
					return reportEnvelope{}, err
				}
				return reportEnvelope{
					ReportID:       ulid.Make().String(),
					GeneratedAt:    time.Now().UTC(),
					FactorsVersion: a.table.Version(),
					Report:         out,
				}, nil
			}
			return runCalc(cmd, a, &flags, calc, func(cmd *cobra.Command, env reportEnvelope) error {
				return renderReport(cmd.OutOrStdout(), env)
			})
		},
	}
	flags.register(cmd)
	return cmd
}
