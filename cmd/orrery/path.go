package main

import (
	"fmt"
	"os"

	"github.com/orrery-viz/orrery"
	"github.com/spf13/cobra"
)

var pathCSV string

var pathCmd = &cobra.Command{
	Use:   "path <body>",
	Short: "Tessellate the orbit of a body",
	Args:  cobra.ExactArgs(1),
	RunE:  runPath,
}

func init() {
	pathCmd.Flags().StringVar(&pathCSV, "csv", "", "write the points to this CSV file")
	rootCmd.AddCommand(pathCmd)
}

func runPath(cmd *cobra.Command, args []string) error {
	entry, err := resolveBody(args[0])
	if err != nil {
		return err
	}
	body, err := entry.Tracked(orbitColor(entry))
	if err != nil {
		return err
	}
	if err := body.Elements.Validate(); err != nil {
		return err
	}
	policies := cfg.Policies(newPropagator())
	t := policies.For(body.Classification)
	path := t.Tessellate(body.Elements)
	first, last := path.Points[0], path.Points[path.Len()-1]
	fmt.Fprintf(cmd.OutOrStdout(), "%s\tpolicy=%s\tsegments=%d\tpoints=%d\tmidpoints=%d\n", body.Name, path.Policy, path.Segments, path.Len(), path.Midpoints)
	fmt.Fprintf(cmd.OutOrStdout(), "first\t%s\nlast\t%s\n", formatVec(first), formatVec(last))
	if pathCSV == "" {
		return nil
	}
	f, err := os.Create(pathCSV)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := orrery.WritePathCSV(f, path); err != nil {
		return err
	}
	logger.Log("level", "info", "subsys", "cli", "status", "written", "file", pathCSV)
	return nil
}
