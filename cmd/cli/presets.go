package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newPresetsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List manufacturer presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := root.registry()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tNAME\tCYCLE LIFE\tWARRANTY\tAC EFF")
			for _, p := range reg.All() {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d y\t%.1f%%\n", p.Key, p.Name, p.TypicalCycleLife, p.WarrantyYears, p.TypicalACEfficiency*100)
			}
			return tw.Flush()
		},
	}
}
