package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/JonMunkholm/census/internal/core"
	"github.com/spf13/cobra"
)

func newViewsCmd(a *app) *cobra.Command {
	var country string

	cmd := &cobra.Command{
		Use:   "views",
		Short: "List the exportable views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views := core.Views()
			if country != "" {
				c, err := core.ParseCountry(country)
				if err != nil {
					return err
				}
				views = core.ViewsFor(c)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tCOUNTRY\tORDERING\tFILE")
			for _, v := range views {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Key, v.Country, v.Ordering, a.analyser.ViewPath(v))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&country, "country", "", "Only list views for india or us")
	return cmd
}
