package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var bodiesCmd = &cobra.Command{
	Use:   "bodies",
	Short: "List the known bodies",
	RunE:  runBodies,
}

func init() {
	rootCmd.AddCommand(bodiesCmd)
}

func runBodies(cmd *cobra.Command, args []string) error {
	entries, err := catalog()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCLASS\tRADIUS\tDISPLAY RADIUS\tELEMENTS")
	for _, e := range entries {
		elements := "-"
		if e.Elements != nil {
			elements = e.Elements.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%.1f km\t%.4f\t%s\n", e.Name, e.Classification, e.Radius, e.DisplayRadius(cfg.Scaling), elements)
	}
	return w.Flush()
}
