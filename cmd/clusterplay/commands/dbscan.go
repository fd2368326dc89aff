package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpraski/clusterplay"
	"github.com/mpraski/clusterplay/internal/render"
)

type dbscanFlags struct {
	eps    float64
	minPts int
}

func newDBSCANCmd(root *rootFlags) *cobra.Command {
	f := &dbscanFlags{}

	cmd := &cobra.Command{
		Use:   "dbscan",
		Short: "Label points with DBSCAN",
		Long: `Run DBSCAN on the loaded points and print cluster labels and core flags.

A point is core when at least --min-pts points, itself included, lie within
--eps of it. Points reachable from no core point are reported as noise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBSCAN(cmd, root, f)
		},
	}

	fl := cmd.Flags()
	fl.Float64Var(&f.eps, "eps", clusterplay.DefaultEps, "neighborhood radius (10-100)")
	fl.IntVar(&f.minPts, "min-pts", clusterplay.DefaultMinPts, "core threshold including the point itself (2-12)")

	return cmd
}

func runDBSCAN(cmd *cobra.Command, root *rootFlags, f *dbscanFlags) error {
	cfg, err := root.loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("eps") {
		cfg.Eps = f.eps
	}
	if flags.Changed("min-pts") {
		cfg.MinPts = f.minPts
	}
	cfg.Mode = string(clusterplay.ModeDBSCAN)

	if err := cfg.Validate(); err != nil {
		return err
	}

	pts, err := loadPoints(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	logger := cfg.Logger().WithMode(clusterplay.ModeDBSCAN).WithCount(len(pts))

	pg := clusterplay.NewPlayground(pts, append(cfg.Options(), clusterplay.WithLogger(logger))...)
	defer pg.Close()

	if _, err := pg.RecomputeDBSCAN(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	s := pg.State()

	fmt.Fprintln(out, render.DefaultStyles.Status(s))

	return finish(out, render.DefaultStyles, s)
}
