package main

import (
	"fmt"

	"github.com/orrery-viz/orrery"
	"github.com/spf13/cobra"
)

var positionT float64

var positionCmd = &cobra.Command{
	Use:   "position <body>",
	Short: "Print the display position of a body",
	Long: `Print the display position of a body at kernel time --time, counted from
perihelion. One year of an orbit at 1 AU lasts 2π.`,
	Args: cobra.ExactArgs(1),
	RunE: runPosition,
}

func init() {
	positionCmd.Flags().Float64VarP(&positionT, "time", "t", 0, "kernel time since perihelion")
	rootCmd.AddCommand(positionCmd)
}

func runPosition(cmd *cobra.Command, args []string) error {
	entry, err := resolveBody(args[0])
	if err != nil {
		return err
	}
	if entry.Elements == nil {
		// The Sun sits at the origin.
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", entry.Name, formatVec([]float64{0, 0, 0}))
		return nil
	}
	if err := entry.Elements.Validate(); err != nil {
		return err
	}
	prop := newPropagator()
	st := prop.State(*entry.Elements, positionT)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\t%s\n", entry.Name, formatVec(cfg.Scaling.Position(st.R)))
	fmt.Fprintf(out, "r=%.6f AU\tν=%.3f°\tE=%.6f\tdegraded=%t\n", st.RNorm(), orrery.Rad2deg(st.TrueAnomaly()), st.EccentricAnomaly(), st.Degraded)
	return nil
}
