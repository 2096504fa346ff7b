package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/deskstead/internal/config"
	"github.com/san-kum/deskstead/internal/export"
	"github.com/san-kum/deskstead/internal/geom"
	"github.com/san-kum/deskstead/internal/metrics"
	"github.com/san-kum/deskstead/internal/physics"
	"github.com/san-kum/deskstead/internal/scene"
	"github.com/san-kum/deskstead/internal/sim"
	"github.com/san-kum/deskstead/internal/storage"
	"github.com/san-kum/deskstead/internal/tui"
	"github.com/san-kum/deskstead/internal/viz"
	"github.com/spf13/cobra"
)

var (
	csvOut      string
	jsonOut     string
	svgOut      string
	snapshotOut string
	save        bool
	plot        bool
)

func runSim(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, config.ModePhysics, "bounce")
	if err != nil {
		return err
	}
	name := preset
	if name == "" {
		name = "bounce"
	}

	w, h := cfg.Window.Size(config.FallbackWidth, config.FallbackHeight)
	phys, err := scene.NewPhysics(cfg, w, h, nil)
	if err != nil {
		return err
	}

	groundY := float64(h)
	if floor, ok := phys.Floor(); ok {
		f, _ := phys.World.Get(floor)
		groundY = f.PhysicsBody().Bounds().Min.Y()
	}

	simulator := sim.New(phys)
	simulator.AddMetric(metrics.NewBounces())
	simulator.AddMetric(metrics.NewEnergy(cfg.World.Gravity, groundY))
	simulator.AddMetric(metrics.NewEnergyLoss(cfg.World.Gravity, groundY))
	simulator.AddMetric(metrics.NewContainment(geom.AABB{Max: mgl64.Vec2{float64(w), float64(h)}}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runCfg := sim.Config{Dt: cfg.World.Dt, Duration: cfg.Duration}
	result, err := simulator.Run(ctx, runCfg)
	if err != nil {
		return err
	}

	id, tracked := firstMovable(phys)
	if plot && tracked {
		heights := result.Series(func(s metrics.Sample) (float64, bool) {
			b, ok := s.Body(id)
			if !ok {
				return 0, false
			}
			return groundY - b.Position.Y(), true
		})
		if len(heights) > 0 {
			graph := asciigraph.Plot(heights,
				asciigraph.Height(12),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("%s: body %d height above ground (px)", name, id)),
			)
			fmt.Println(graph)
			fmt.Println()
		}
	}

	rows := [][2]string{
		{"steps", fmt.Sprint(result.StepsTaken)},
		{"time", fmt.Sprintf("%.2fs", float64(result.StepsTaken)*runCfg.Dt)},
		{"bodies", fmt.Sprint(phys.World.Len())},
	}
	for _, k := range sortedKeys(result.Metrics) {
		rows = append(rows, [2]string{k, fmt.Sprintf("%.4g", result.Metrics[k])})
	}
	if tracked {
		peaks := metrics.NewPeaks(id)
		for _, s := range result.Samples {
			peaks.Observe(s)
		}
		for i, y := range peaks.Peaks() {
			rows = append(rows, [2]string{fmt.Sprintf("peak %d", i+1), fmt.Sprintf("%.1fpx", groundY-y)})
		}
	}
	fmt.Println(viz.Summary("deskstead sim "+name, rows))

	if csvOut != "" {
		if err := storage.ExportCSV(csvOut, result); err != nil {
			return err
		}
		fmt.Printf("exported %s\n", csvOut)
	}
	if jsonOut != "" {
		if err := storage.ExportJSON(jsonOut, storage.NewExportData(name, runCfg, result)); err != nil {
			return err
		}
		fmt.Printf("exported %s\n", jsonOut)
	}
	if svgOut != "" {
		if err := export.WriteTrajectories(svgOut, result.Samples, w, h); err != nil {
			return err
		}
		fmt.Printf("exported %s\n", svgOut)
	}
	if snapshotOut != "" {
		canvas := viz.NewCanvas(w/8, h/16)
		canvas.Viewport(float64(w), float64(h))
		phys.Draw(canvas)
		if err := export.WriteSnapshot(snapshotOut, canvas, 4); err != nil {
			return err
		}
		fmt.Printf("exported %s\n", snapshotOut)
	}
	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(name, runCfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("saved run %s\n", runID)
	}
	return nil
}

func firstMovable(phys *scene.Physics) (physics.ID, bool) {
	for _, id := range phys.World.IDs() {
		e, _ := phys.World.Get(id)
		if !e.PhysicsBody().Fixed() {
			return id, true
		}
	}
	return 0, false
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tDT\tSTEPS\tBODIES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04"),
			run.Duration,
			run.Dt,
			run.Steps,
			run.Bodies,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rows, err := st.LoadRows(args[0])
	if err != nil {
		return err
	}

	series := make(map[physics.ID][]float64)
	var ids []physics.ID
	for _, r := range rows {
		if _, ok := series[r.ID]; !ok {
			ids = append(ids, r.ID)
		}
		series[r.ID] = append(series[r.ID], -r.Y)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	fmt.Printf("run: %s  preset: %s  steps: %d\n\n", meta.ID, meta.Preset, meta.Steps)
	for _, id := range ids {
		graph := asciigraph.Plot(series[id],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("body %d: -y (px)", id)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	mode := config.ModePhysics
	if len(args) > 0 {
		mode = args[0]
	}
	var fallback string
	switch mode {
	case config.ModePhysics:
		fallback = "bounce"
	case config.ModeParticles:
		fallback = "snow"
	default:
		return fmt.Errorf("unknown mode: %s (modes: %v)", mode, config.Modes())
	}

	cfg, err := loadConfig(cmd, mode, fallback)
	if err != nil {
		return err
	}
	title := preset
	if title == "" {
		title = fallback
	}
	return tui.Run(cfg, tui.Options{
		Title:     "deskstead watch " + title,
		Particles: mode == config.ModeParticles,
	})
}
