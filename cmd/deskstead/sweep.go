package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/config"
	"github.com/san-kum/deskstead/internal/geom"
	"github.com/san-kum/deskstead/internal/metrics"
	"github.com/san-kum/deskstead/internal/scene"
	"github.com/san-kum/deskstead/internal/sim"
	"github.com/spf13/cobra"
)

var (
	sweepParam  string
	sweepValues []float64
	minimize    string
)

// sweepParams set one knob on a config copy.
var sweepParams = map[string]func(cfg *config.Config, v float64){
	"restitution": func(cfg *config.Config, v float64) {
		for i := range cfg.Objects {
			cfg.Objects[i].Restitution = v
		}
	},
	"mass": func(cfg *config.Config, v float64) {
		for i := range cfg.Objects {
			if !cfg.Objects[i].Fixed {
				cfg.Objects[i].Mass = v
			}
		}
	},
	"gravity":      func(cfg *config.Config, v float64) { cfg.World.Gravity = v },
	"drag":         func(cfg *config.Config, v float64) { cfg.World.AirDrag = v },
	"floor_bounce": func(cfg *config.Config, v float64) { cfg.World.Floor.Restitution = v },
}

func runSweep(cmd *cobra.Command, args []string) error {
	apply, ok := sweepParams[sweepParam]
	if !ok {
		return fmt.Errorf("unknown parameter: %s", sweepParam)
	}
	if len(sweepValues) == 0 {
		return fmt.Errorf("no values to sweep")
	}
	base, err := loadConfig(cmd, config.ModePhysics, "bounce")
	if err != nil {
		return err
	}
	w, h := base.Window.Size(config.FallbackWidth, config.FallbackHeight)
	groundY := float64(h) - base.World.Floor.Inset - base.World.Floor.Thickness/2

	ensemble := sim.NewEnsemble(func() []metrics.Metric {
		return []metrics.Metric{
			metrics.NewBounces(),
			metrics.NewEnergyLoss(base.World.Gravity, groundY),
			metrics.NewContainment(geom.AABB{Max: mgl64.Vec2{float64(w), float64(h)}}),
		}
	})
	for _, v := range sweepValues {
		cfg := *base
		cfg.Objects = append([]config.ObjectConfig(nil), base.Objects...)
		apply(&cfg, v)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%s=%g: %w", sweepParam, v, err)
		}
		ensemble.Add(func() (*scene.Physics, error) {
			return scene.NewPhysics(&cfg, w, h, nil)
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := ensemble.Run(ctx, sim.Config{Dt: base.World.Dt, Duration: base.Duration})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tBOUNCES\tENERGY_LOSS\tCONTAINMENT\n", sweepParam)
	for i, r := range results {
		fmt.Fprintf(tw, "%g\t%.0f\t%.4f\t%.3f\n",
			sweepValues[i], r.Metrics["bounces"], r.Metrics["energy_loss"], r.Metrics["containment"])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if idx, v, ok := sim.Best(results, minimize); ok {
		fmt.Printf("\nlowest %s: %.4g at %s=%g\n", minimize, v, sweepParam, sweepValues[idx])
	}
	return nil
}
