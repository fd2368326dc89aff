package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpraski/clusterplay"
	"github.com/mpraski/clusterplay/internal/config"
)

type rootFlags struct {
	configPath string
	verbose    bool
	logFormat  string

	pointsFile string
	xCol, yCol int
	seed       int64
}

// NewRootCmd builds the clusterplay command tree.
func NewRootCmd() *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "clusterplay",
		Short: "Step through k-means and DBSCAN on 2-D points",
		Long: `clusterplay - explore centroid-based and density-based clustering.

Points come from a CSV file (--points) or from the "points" list of the YAML
config (--config). Parameters given as flags override the config.

Examples:
  # Ten k-means phases with K=3
  clusterplay kmeans --points data.csv --k 3 --steps 10

  # Let the scheduler drive k-means every 200ms
  clusterplay kmeans --points data.csv --auto --interval 200ms --steps 20

  # DBSCAN with a tighter neighborhood
  clusterplay dbscan --points data.csv --eps 25 --min-pts 4`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&f.logFormat, "log-format", "", "log format: text or json")
	pf.StringVarP(&f.pointsFile, "points", "p", "", "CSV file with points")
	pf.IntVar(&f.xCol, "x-col", 0, "CSV column holding x")
	pf.IntVar(&f.yCol, "y-col", 1, "CSV column holding y")
	pf.Int64Var(&f.seed, "seed", clusterplay.DefaultSeed, "random seed")

	cmd.AddCommand(newKMeansCmd(f))
	cmd.AddCommand(newDBSCANCmd(f))

	return cmd
}

// loadConfig reads the config file and applies the flags the user set.
func (f *rootFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("points") {
		cfg.PointsFile = f.pointsFile
	}
	if flags.Changed("x-col") {
		cfg.XCol = f.xCol
	}
	if flags.Changed("y-col") {
		cfg.YCol = f.yCol
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if f.verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadPoints returns the configured dataset.
func loadPoints(ctx context.Context, cfg *config.Config) ([]clusterplay.Point, error) {
	pts, err := cfg.LoadPoints()
	cfg.Logger().LogDataset(ctx, len(pts), err)
	if err != nil {
		return nil, fmt.Errorf("failed to load points: %w", err)
	}

	return pts, nil
}
