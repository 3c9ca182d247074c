package main

import (
	"fmt"

	"github.com/JonMunkholm/census/internal/config"
	"github.com/JonMunkholm/census/internal/core"
	"github.com/JonMunkholm/census/internal/logging"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once the root has run.
type app struct {
	cfg      *config.Config
	analyser *core.Analyser

	encoding  string
	logLevel  string
	logFormat string
	anyExt    bool
	exportDir string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "census",
		Short: "Normalize, sort and export India and US state census data",
		Long: `census reads state-level census CSV files for India and the United States,
merges India's state-code file into its census data, and prints or exports
the records ordered by any supported field.

Defaults for every path and option come from the environment (see .env);
flags override them.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.encoding, "encoding", "", "Input encoding: utf-8, latin1, windows-1252")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format (text, json)")
	flags.BoolVar(&a.anyExt, "allow-any-ext", false, "Accept input files without a .csv extension")
	flags.StringVar(&a.exportDir, "export-dir", "", "Directory for view exports")

	root.AddCommand(
		newLoadCmd(a),
		newPreviewCmd(a),
		newSortCmd(a),
		newExportCmd(a),
		newViewsCmd(a),
		newCompareCmd(a),
	)
	return root
}

// setup loads configuration, applies flag overrides and builds the analyser.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("encoding") {
		if !core.ValidEncoding(a.encoding) {
			return fmt.Errorf("unsupported encoding %q", a.encoding)
		}
		cfg.Input.Encoding = a.encoding
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = a.logFormat
	}
	if a.anyExt {
		cfg.Input.RequireCSVExt = false
	}
	if flags.Changed("export-dir") {
		cfg.Export.Dir = a.exportDir
	}

	// stdout carries JSON output; logs go to stderr.
	logging.SetupWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)

	a.cfg = cfg
	a.analyser = core.NewAnalyser(cfg.AnalyserOptions())
	return nil
}
