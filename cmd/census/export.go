package main

import (
	"fmt"

	"github.com/JonMunkholm/census/internal/core"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		src   sourceFlags
		views []string
		field string
		dir   string
		out   string
	)

	cmd := &cobra.Command{
		Use:   "export <india|us>",
		Short: "Load census data and write sorted JSON files",
		Long: `Load census data and write it as JSON.

With --view, write the named catalogue views into the export directory.
With --out, write an ad-hoc ordering given by --field and --dir to a file.
With neither, write every view the country supports.`,
		Example: `  census export india
  census export us --view us-water-area --view us-housing
  census export india --field density --dir asc --out density.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.load(cmd, args[0], src)
			if err != nil {
				return err
			}

			if out != "" {
				o, err := core.ParseOrdering(field, dir)
				if err != nil {
					return err
				}
				if _, err := a.analyser.Export(cmd.Context(), o, out); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", o, out)
				return nil
			}

			keys := views
			if len(keys) == 0 {
				for _, v := range core.ViewsFor(c) {
					keys = append(keys, v.Key)
				}
			}
			for _, key := range keys {
				if _, err := a.analyser.ExportView(cmd.Context(), key); err != nil {
					return err
				}
				v, _ := core.ViewByKey(key)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", v.Key, a.analyser.ViewPath(v))
			}
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().StringSliceVar(&views, "view", nil, "View key to export (repeatable)")
	cmd.Flags().StringVar(&field, "field", "population", "Field for --out")
	cmd.Flags().StringVar(&dir, "dir", "", "Direction for --out")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write an ad-hoc ordering to this path")
	return cmd
}
