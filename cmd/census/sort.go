package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/JonMunkholm/census/internal/core"
	"github.com/spf13/cobra"
)

func newSortCmd(a *app) *cobra.Command {
	var (
		src   sourceFlags
		field string
		dir   string
		table bool
	)

	cmd := &cobra.Command{
		Use:   "sort <india|us>",
		Short: "Load census data and print it ordered by a field",
		Long: `Load census data and print it as JSON ordered by --field.

Fields: state, stateCode, population, density, area, and for the US also
housingUnits, totalArea, waterArea, landArea, housingDensity. Names sort
ascending and metrics descending unless --dir is given. Ties are broken by
state name; India states without a code sort last by stateCode.`,
		Example: `  census sort india --field density
  census sort us --field waterArea --dir asc --table`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := core.ParseOrdering(field, dir)
			if err != nil {
				return err
			}
			if _, err := a.load(cmd, args[0], src); err != nil {
				return err
			}

			if table {
				records, err := a.analyser.Sorted(o)
				if err != nil {
					return err
				}
				return printTable(cmd, records, o)
			}

			out, err := a.analyser.SortedJSON(o)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&field, "field", "population", "Field to order by")
	cmd.Flags().StringVar(&dir, "dir", "", "Direction: asc or desc (default depends on field)")
	cmd.Flags().BoolVar(&table, "table", false, "Print a table instead of JSON")
	return cmd
}

// printTable writes rank, state, code and the ordering field's value.
func printTable(cmd *cobra.Command, records []core.Record, o core.Ordering) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tSTATE\tCODE\t%s\n", o.Field)
	for i, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, r.State, r.StateCode, fieldValue(r, o.Field))
	}
	return tw.Flush()
}

func fieldValue(r core.Record, f core.Field) string {
	switch f {
	case core.ByState:
		return r.State
	case core.ByStateCode:
		return r.StateCode
	case core.ByPopulation:
		return fmt.Sprint(r.Population)
	case core.ByDensity:
		return fmt.Sprintf("%g", r.Density())
	case core.ByArea:
		return fmt.Sprintf("%g", r.Area())
	case core.ByHousingUnits:
		return fmt.Sprint(r.HousingUnits)
	case core.ByTotalArea:
		return fmt.Sprintf("%.2f", r.TotalArea)
	case core.ByWaterArea:
		return fmt.Sprintf("%.2f", r.WaterArea)
	case core.ByLandArea:
		return fmt.Sprintf("%.2f", r.LandArea)
	case core.ByHousingDensity:
		return fmt.Sprintf("%.2f", r.HousingDensity)
	}
	return ""
}
