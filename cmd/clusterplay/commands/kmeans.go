package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mpraski/clusterplay"
	"github.com/mpraski/clusterplay/internal/render"
)

type kmeansFlags struct {
	k        int
	steps    int
	auto     bool
	interval time.Duration
	onion    bool
}

func newKMeansCmd(root *rootFlags) *cobra.Command {
	f := &kmeansFlags{}

	cmd := &cobra.Command{
		Use:   "kmeans",
		Short: "Step k-means and print every phase",
		Long: `Reset k-means on the loaded points, then execute --steps phases.

Odd steps assign each point to its nearest center, even steps move every center
to the mean of its points. With --auto the steps are driven by the scheduler at
--interval instead of back to back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKMeans(cmd, root, f)
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&f.k, "k", clusterplay.DefaultK, "number of clusters (1-6)")
	fl.IntVarP(&f.steps, "steps", "n", 10, "number of phases to execute")
	fl.BoolVar(&f.auto, "auto", false, "drive steps with the scheduler")
	fl.DurationVar(&f.interval, "interval", clusterplay.DefaultInterval, "auto-run cadence")
	fl.BoolVar(&f.onion, "onion", false, "show previous center positions")

	return cmd
}

func runKMeans(cmd *cobra.Command, root *rootFlags, f *kmeansFlags) error {
	cfg, err := root.loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("k") {
		cfg.K = f.k
	}
	if flags.Changed("interval") {
		cfg.Interval = f.interval.String()
	}
	if flags.Changed("onion") {
		cfg.Onion = f.onion
	}
	cfg.Mode = string(clusterplay.ModeKMeans)

	if err := cfg.Validate(); err != nil {
		return err
	}

	pts, err := loadPoints(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	var (
		out    = cmd.OutOrStdout()
		styles = render.DefaultStyles
		mu     sync.Mutex
		logger = cfg.Logger().WithMode(clusterplay.ModeKMeans).WithK(cfg.K).WithCount(len(pts))
	)

	if len(pts) == 0 {
		logger.Warn("no points loaded; centers use the fallback layout")
	}

	show := func(s clusterplay.State) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(out, styles.Status(s))
	}

	var (
		steps = make(chan struct{}, 1)
		count int
	)

	opts := append(cfg.Options(),
		clusterplay.WithLogger(logger),
		clusterplay.WithObserver(func(s clusterplay.State) {
			show(s)

			mu.Lock()
			count++
			reached := count >= f.steps
			mu.Unlock()

			if reached {
				select {
				case steps <- struct{}{}:
				default:
				}
			}
		}),
	)

	pg := clusterplay.NewPlayground(pts, opts...)
	defer pg.Close()

	show(pg.State())

	if f.steps > 0 {
		if f.auto {
			err = autoRun(cmd.Context(), pg, steps)
		} else {
			err = manualRun(pg, f.steps)
		}
		if err != nil {
			return err
		}
	}

	pg.Close()

	return finish(out, styles, pg.State())
}

func manualRun(pg *clusterplay.Playground, n int) error {
	for i := 0; i < n; i++ {
		if _, err := pg.Step(); err != nil {
			return err
		}
	}

	return nil
}

// autoRun lets the scheduler drive the playground until enough steps ran or
// the user interrupts.
func autoRun(ctx context.Context, pg *clusterplay.Playground, done <-chan struct{}) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	pg.ToggleAuto()

	g.Go(func() error {
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	err := g.Wait()

	if pg.State().Auto {
		pg.ToggleAuto()
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func finish(w io.Writer, styles render.Styles, s clusterplay.State) error {
	fmt.Fprintln(w)
	fmt.Fprint(w, styles.Legend(s))
	fmt.Fprintln(w)

	return writeState(w, s)
}
