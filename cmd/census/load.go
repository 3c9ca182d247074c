package main

import (
	"fmt"

	"github.com/JonMunkholm/census/internal/core"
	"github.com/spf13/cobra"
)

// sourceFlags selects the files a command loads.
type sourceFlags struct {
	file    string
	codes   string
	noCodes bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Census CSV (default from CENSUS_INDIA_PATH or CENSUS_US_PATH)")
	cmd.Flags().StringVar(&f.codes, "codes", "", "India state-code CSV (default from CENSUS_INDIA_STATE_CODE_PATH)")
	cmd.Flags().BoolVar(&f.noCodes, "no-codes", false, "Skip state-code enrichment for India")
}

// load parses the country argument and loads its sources into the session.
func (a *app) load(cmd *cobra.Command, country string, f sourceFlags) (core.Country, error) {
	c, err := core.ParseCountry(country)
	if err != nil {
		return core.CountryUnknown, err
	}

	primary := f.file
	secondary := ""
	switch c {
	case core.India:
		if primary == "" {
			primary = a.cfg.Census.IndiaPath
		}
		if !f.noCodes {
			secondary = f.codes
			if secondary == "" {
				secondary = a.cfg.Census.IndiaStateCodePath
			}
		}
	case core.US:
		if primary == "" {
			primary = a.cfg.Census.USPath
		}
		// Rejected by the analyser: only India has a state-code file.
		secondary = f.codes
	}

	if secondary != "" {
		_, err = a.analyser.LoadCensusData(cmd.Context(), c, primary, secondary)
	} else {
		_, err = a.analyser.LoadCensusData(cmd.Context(), c, primary)
	}
	return c, err
}

func newLoadCmd(a *app) *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "load <india|us>",
		Short: "Load and validate census files, then print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.load(cmd, args[0], src); err != nil {
				return err
			}
			last := a.analyser.Status().Last
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Country:  %s\n", last.Country)
			fmt.Fprintf(out, "Source:   %s\n", last.Source)
			fmt.Fprintf(out, "Records:  %d\n", last.Records)
			if last.StateCodes != "" {
				fmt.Fprintf(out, "Codes:    %s (%d matched)\n", last.StateCodes, last.Enriched)
			}
			fmt.Fprintf(out, "Duration: %dms\n", last.DurationMS)
			return nil
		},
	}
	src.register(cmd)
	return cmd
}

func newPreviewCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "preview <india|us>",
		Short: "Decode a census file without loading it and print what a load would produce",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := core.ParseCountry(args[0])
			if err != nil {
				return err
			}
			if file == "" {
				file = a.cfg.Census.IndiaPath
				if c == core.US {
					file = a.cfg.Census.USPath
				}
			}
			f, err := a.openInput(file)
			if err != nil {
				return err
			}
			defer f.Close()

			resp, err := a.analyser.Preview(cmd.Context(), c, file, f)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Census CSV to preview")
	return cmd
}
