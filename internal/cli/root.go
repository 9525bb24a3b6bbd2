// Package cli implements the ghgcalc command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/ghgcalc/internal/carbon"
	"github.com/rshade/ghgcalc/internal/config"
	"github.com/rshade/ghgcalc/internal/factors"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// app is the state shared by every subcommand once the root pre-run has
// loaded configuration and the factor table.
type app struct {
	cfg    config.Config
	logger zerolog.Logger
	table  *factors.Client
	calc   *carbon.Calculator

	// stdoutIsTerminal decides the default output format.
	stdoutIsTerminal func() bool
}

// NewRootCmd creates the root Cobra command for the ghgcalc CLI.
func NewRootCmd(ver string) *cobra.Command {
	a := &app{
		logger:           zerolog.Nop(),
		stdoutIsTerminal: func() bool { return isTerminal(os.Stdout) },
	}

	cmd := &cobra.Command{
		Use:           "ghgcalc",
		Short:         "Greenhouse-gas emission calculator",
		Long:          "ghgcalc computes Scope 1, 2 and 3 greenhouse-gas emissions in kg CO2e following the GHG Protocol.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().String("config", "", "path to a YAML configuration file")
	cmd.PersistentFlags().String("factors", "", "emission factor data set (JSON or YAML) replacing the embedded defaults")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	cmd.AddCommand(
		newScope1Cmd(a),
		newScope2Cmd(a),
		newScope3Cmd(a),
		newReportCmd(a),
		newFactorsCmd(a),
	)

	return cmd
}

const rootCmdExample = `  # Direct emissions from a YAML inventory
  ghgcalc scope1 --input scope1.yaml

  # Full report as JSON
  ghgcalc report --input inventory.json --output json

  # Pipe a Scope 2 request through stdin
  echo '{"electricity":{"amount_kwh":1000}}' | ghgcalc scope2 --input -

  # Use a custom factor data set
  ghgcalc --factors factors-2025.yaml report --input inventory.yaml

  # Show the active factor data set
  ghgcalc factors`

// setup loads configuration, applies flag overrides, builds the logger
// and loads the factor table.
func (a *app) setup(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if factorsFile, _ := cmd.Flags().GetString("factors"); factorsFile != "" {
		cfg.Factors.File = factorsFile
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Logging.Level = zerolog.DebugLevel.String()
		cfg.Logging.Format = config.LogFormatConsole
	}

	base := config.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	carbon.SetLogger(base)
	a.logger = base.With().Str("component", "cli").Logger()
	a.cfg = cfg

	var table *factors.Client
	if cfg.Factors.File != "" {
		table, err = factors.NewClientFromFile(cfg.Factors.File, base)
	} else {
		table, err = factors.NewClient(base)
	}
	if err != nil {
		return fmt.Errorf("loading emission factors: %w", err)
	}
	a.table = table
	a.calc = carbon.NewCalculator(table)

	a.logger.Debug().
		Str("command", cmd.Name()).
		Str("factors_origin", table.Origin()).
		Str("factors_version", table.Version()).
		Msg("command started")

	return nil
}
