package main

import (
	"fmt"
	"os"

	kitlog "github.com/go-kit/log"
	"github.com/orrery-viz/orrery"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	catalogFile string
	verbose     bool

	cfg      orrery.Config
	logger   kitlog.Logger
	registry *prometheus.Registry
	metrics  *orrery.Metrics
)

var rootCmd = &cobra.Command{
	Use:   "orrery",
	Short: "Solar system orbits from Keplerian elements",
	Long: `orrery places solar-system bodies from their Keplerian elements and
tessellates their orbits for display.

The configuration is read from --config, or from conf.toml in the directory
named by $ORRERY_CONFIG. Without either, the defaults are used.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $ORRERY_CONFIG/conf.toml)")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "additional body catalog (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug records")
}

func setup(cmd *cobra.Command, args []string) (err error) {
	if cfgFile != "" {
		cfg, err = orrery.LoadConfig(cfgFile)
	} else {
		cfg, err = orrery.ConfigFromEnv()
	}
	if err != nil {
		return err
	}
	logger = orrery.NewLogger(os.Stderr)
	if !verbose {
		logger = orrery.WithoutDebug(logger)
	}
	registry = prometheus.NewRegistry()
	metrics = orrery.NewMetrics(registry)
	return nil
}

func newPropagator() orrery.Propagator {
	return orrery.NewPropagator(cfg.Scaling,
		orrery.WithPropagatorLogger(logger),
		orrery.WithPropagatorMetrics(metrics))
}

// catalog returns the built-in bodies followed by those of the catalog file.
func catalog() ([]orrery.CatalogEntry, error) {
	entries := orrery.Bodies()
	path := catalogFile
	if path == "" {
		path = cfg.CatalogPath
	}
	if path == "" {
		return entries, nil
	}
	// Unusable rows are logged by LoadCatalog and left out.
	extra, err := orrery.LoadCatalog(path, logger)
	if extra == nil {
		return nil, err
	}
	return append(entries, extra...), nil
}

func resolveBody(name string) (orrery.CatalogEntry, error) {
	entries, err := catalog()
	if err != nil {
		return orrery.CatalogEntry{}, err
	}
	return orrery.FindEntry(entries, name)
}

// orbitColor returns the colour an orbit is drawn with: planets keep their
// own, everything else uses the configured NEO colour.
func orbitColor(e orrery.CatalogEntry) orrery.Color {
	if e.Classification == orrery.ClassPlanet {
		return e.Color
	}
	return cfg.NEOOrbitColor
}

func formatVec(v []float64) string {
	return fmt.Sprintf("%+.6f %+.6f %+.6f", v[0], v[1], v[2])
}
