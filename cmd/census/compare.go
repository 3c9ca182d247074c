package main

import (
	"fmt"

	"github.com/JonMunkholm/census/internal/core"
	"github.com/spf13/cobra"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		india  string
		us     string
		metric string
		legacy bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Report which state leads India and the US on a metric",
		Long: `Load both countries' census files and print the state whose top value
for --metric is greater. On a draw India wins.

--legacy ranks India by population density and the US by housing density,
which reproduces the historical "most populous" answer.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := core.ParseMetric(metric)
			if err != nil {
				return err
			}
			opts := core.CompareOptions{Metric: m}
			if legacy {
				opts.Mode = core.ModeLegacy
			}
			if india == "" {
				india = a.cfg.Census.IndiaPath
			}
			if us == "" {
				us = a.cfg.Census.USPath
			}

			result, err := a.analyser.Compare(cmd.Context(), india, us, opts)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "India: %s (%s %g)\n", result.India.Record.State, result.India.Field, result.India.Value)
			fmt.Fprintf(out, "US:    %s (%s %g)\n", result.US.Record.State, result.US.Field, result.US.Value)
			fmt.Fprintf(out, "Winner: %s, %s\n", result.Winner, result.WinnerCountry)
			return nil
		},
	}
	cmd.Flags().StringVar(&india, "india", "", "India census CSV (default from CENSUS_INDIA_PATH)")
	cmd.Flags().StringVar(&us, "us", "", "US census CSV (default from CENSUS_US_PATH)")
	cmd.Flags().StringVar(&metric, "metric", "population", "Metric: population, density, area")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "Compare India density against US housing density")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full comparison as JSON")
	return cmd
}
