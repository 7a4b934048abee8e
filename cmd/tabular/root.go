package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spektr-org/tabular/internal/logging"
)

type app struct {
	v   *viper.Viper
	log *logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logging.Noop()}

	root := &cobra.Command{
		Use:   "tabular",
		Short: "Tabular — descriptive statistics and threshold filters for user datasets",
		Long: `Tabular — descriptive statistics and threshold filters for user datasets

Formats:
  json      Full JSON output (default)
  pretty    Pretty-printed JSON
  text      Human-readable summary
  csv       Table/chart data as CSV (ready for Sheets/Excel)

Environment:
  Every flag can be set as TABULAR_<FLAG>, e.g. TABULAR_THRESHOLD=75.`,
		Example: `  tabular generate --rows 1000 --format csv --out users.csv
  tabular analyze --file users.csv --format pretty
  tabular filter --file users.csv --column score --threshold 80 --format csv
  tabular plot --file users.csv --out-dir plots`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (yaml, json or toml)")
	pf.String("format", "json", "Output format: json, pretty, text, csv")
	pf.String("out", "", "Write output to file instead of stdout")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-format", "text", "Log format: text, json")

	root.AddCommand(
		a.generateCmd(),
		a.analyzeCmd(),
		a.filterCmd(),
		a.plotCmd(),
		a.discoverCmd(),
		versionCmd(),
	)
	return root
}

// configure merges flags, TABULAR_* environment variables and the optional
// config file into a.v, then builds the logger.
func (a *app) configure(cmd *cobra.Command) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	a.v.SetEnvPrefix("TABULAR")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	switch f := a.v.GetString("format"); f {
	case "json", "pretty", "text", "csv":
	default:
		return fmt.Errorf("unknown format %q (want json, pretty, text or csv)", f)
	}

	level, err := logging.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return err
	}
	switch a.v.GetString("log-format") {
	case "json":
		a.log = logging.NewJSON(cmd.ErrOrStderr(), level)
	default:
		a.log = logging.NewText(cmd.ErrOrStderr(), level)
	}
	a.log = a.log.WithCommand(cmd.Name())
	return nil
}

// output runs write against --out when set, stdout otherwise.
func (a *app) output(cmd *cobra.Command, write func(w io.Writer) error) error {
	path := a.v.GetString("out")
	if path == "" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		a.log.LogSave(cmd.Context(), path, err)
		return fmt.Errorf("failed to create output file: %w", err)
	}
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	a.log.LogSave(cmd.Context(), path, err)
	return err
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "tabular %s\n", version)
			return nil
		},
	}
}
