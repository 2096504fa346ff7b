package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/config"
	"github.com/san-kum/deskstead/internal/gui"
	"github.com/san-kum/deskstead/internal/object"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string

	// window
	width        int
	height       int
	fps          int
	clickThrough bool
	topmost      bool
	hud          bool

	// world
	dt       float64
	gravity  float64
	duration float64
	seed     int64

	// particles
	rate   float64
	follow bool

	// sprite
	frameWidth  int
	frameHeight int
	frames      int
	frameSpeed  int
	spriteSize  float64
)

// main registers every command and runs the particle overlay when no
// subcommand is given.
func main() {
	log.SetPrefix("deskstead: ")

	rootCmd := &cobra.Command{
		Use:   "deskstead",
		Short: "desktop overlay toys: particles, sprites and a little physics",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetPrefix("deskstead " + cmd.Name() + ": ")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverlay(cmd, gui.ModeParticles, config.ModeParticles, "sparkle")
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".deskstead", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	particlesCmd := &cobra.Command{
		Use:   "particles",
		Short: "cursor-following particle overlay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverlay(cmd, gui.ModeParticles, config.ModeParticles, "sparkle")
		},
	}
	windowFlags(particlesCmd)
	particlesCmd.Flags().StringVar(&preset, "preset", "", "particle preset")
	particlesCmd.Flags().Float64Var(&rate, "rate", 0, "emission rate in particles/s")
	particlesCmd.Flags().BoolVar(&follow, "follow", true, "emit from the cursor")
	particlesCmd.Flags().Int64Var(&seed, "seed", 0, "random seed")

	physicsCmd := &cobra.Command{
		Use:   "physics",
		Short: "draggable crates on the desktop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverlay(cmd, gui.ModePhysics, config.ModePhysics, "bounce")
		},
	}
	windowFlags(physicsCmd)
	worldFlags(physicsCmd)
	physicsCmd.Flags().StringVar(&preset, "preset", "", "physics preset")

	spriteCmd := &cobra.Command{
		Use:   "sprite [sheet]",
		Short: "sprite sheet animation following the cursor",
		Args:  cobra.ExactArgs(1),
		RunE:  runSprite,
	}
	windowFlags(spriteCmd)
	spriteCmd.Flags().IntVar(&frameWidth, "frame-width", 32, "frame width in texels")
	spriteCmd.Flags().IntVar(&frameHeight, "frame-height", 32, "frame height in texels")
	spriteCmd.Flags().IntVar(&frames, "frames", 1, "number of frames")
	spriteCmd.Flags().IntVar(&frameSpeed, "speed", 8, "updates per frame")
	spriteCmd.Flags().Float64Var(&spriteSize, "size", 64, "drawn size in pixels")

	simCmd := &cobra.Command{
		Use:   "sim",
		Short: "run a physics scene headless",
		Args:  cobra.NoArgs,
		RunE:  runSim,
	}
	worldFlags(simCmd)
	simCmd.Flags().StringVar(&preset, "preset", "", "physics preset")
	simCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	simCmd.Flags().IntVar(&width, "width", config.FallbackWidth, "world width")
	simCmd.Flags().IntVar(&height, "height", config.FallbackHeight, "world height")
	simCmd.Flags().StringVar(&csvOut, "csv", "", "write samples to CSV")
	simCmd.Flags().StringVar(&jsonOut, "json", "", "write samples and metrics to JSON")
	simCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	simCmd.Flags().BoolVar(&plot, "plot", true, "plot the first body's height")
	simCmd.Flags().StringVar(&svgOut, "svg", "", "write body trajectories to SVG")
	simCmd.Flags().StringVar(&snapshotOut, "snapshot", "", "write the final frame as a braille-dot SVG")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run one headless scene per parameter value in parallel",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	worldFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&preset, "preset", "", "physics preset")
	sweepCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "restitution", "restitution, mass, gravity, drag or floor_bounce")
	sweepCmd.Flags().Float64SliceVar(&sweepValues, "values", []float64{0.2, 0.5, 0.8}, "values to try")
	sweepCmd.Flags().StringVar(&minimize, "minimize", "energy_loss", "metric to rank by")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot body heights of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	watchCmd := &cobra.Command{
		Use:   "watch [mode]",
		Short: "preview a scene in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWatch,
	}
	worldFlags(watchCmd)
	watchCmd.Flags().StringVar(&preset, "preset", "", "preset for the mode")
	watchCmd.Flags().IntVar(&width, "width", config.FallbackWidth, "world width")
	watchCmd.Flags().IntVar(&height, "height", config.FallbackHeight, "world height")

	presetsCmd := &cobra.Command{
		Use:   "presets [mode]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modes := config.Modes()
			if len(args) > 0 {
				modes = args
			}
			for _, mode := range modes {
				names := config.ListPresets(mode)
				if len(names) == 0 {
					return fmt.Errorf("no presets for mode: %s (modes: %v)", mode, config.Modes())
				}
				fmt.Printf("%s:\n", mode)
				for _, name := range names {
					fmt.Printf("  %s\n", name)
				}
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	var force bool
	var initMode string
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "deskstead.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s exists, use --force to overwrite", path)
			}
			cfg := config.DefaultConfig()
			if preset != "" {
				cfg = config.GetPreset(initMode, preset)
				if cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(initMode))
				}
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")
	initCmd.Flags().StringVar(&initMode, "mode", config.ModePhysics, "preset mode")
	configCmd.AddCommand(initCmd)

	rootCmd.AddCommand(particlesCmd, physicsCmd, spriteCmd, simCmd, sweepCmd, runsCmd, plotCmd, watchCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func windowFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", 0, "window width, 0 for the monitor size")
	cmd.Flags().IntVar(&height, "height", 0, "window height, 0 for the monitor size")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "target frame rate")
	cmd.Flags().BoolVar(&clickThrough, "click-through", true, "let mouse input pass through the overlay")
	cmd.Flags().BoolVar(&topmost, "topmost", true, "keep the overlay above other windows")
	cmd.Flags().BoolVar(&hud, "hud", false, "show frame rate and counters")
}

func worldFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "physics timestep in seconds")
	cmd.Flags().Float64Var(&gravity, "gravity", 0, "gravity in px/s^2")
}

// loadConfig resolves the config file or preset, then applies flags the user
// set explicitly. An empty fallback means the built-in defaults.
func loadConfig(cmd *cobra.Command, mode, fallback string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	case preset == "" && fallback == "":
		cfg = config.DefaultConfig()
	default:
		name := preset
		if name == "" {
			name = fallback
		}
		cfg = config.GetPreset(mode, name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets(mode))
		}
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Window.Width = width
	}
	if flags.Changed("height") {
		cfg.Window.Height = height
	}
	if flags.Changed("fps") {
		cfg.Window.FPS = fps
	}
	if flags.Changed("click-through") {
		cfg.Window.ClickThrough = clickThrough
	}
	if flags.Changed("topmost") {
		cfg.Window.Topmost = topmost
	}
	if flags.Changed("dt") {
		cfg.World.Dt = dt
	}
	if flags.Changed("gravity") {
		cfg.World.Gravity = gravity
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("rate") {
		cfg.Particles.EmissionRate = rate
	}
	if flags.Changed("follow") {
		cfg.Particles.FollowCursor = follow
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runOverlay(cmd *cobra.Command, mode gui.Mode, presetMode, fallback string) error {
	cfg, err := loadConfig(cmd, presetMode, fallback)
	if err != nil {
		return err
	}
	return gui.Run(cfg, gui.Options{Mode: mode, HUD: hud})
}

func runSprite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "", "")
	if err != nil {
		return err
	}
	return gui.Run(cfg, gui.Options{
		Mode: gui.ModeSprite,
		HUD:  hud,
		Sprite: gui.SpriteOptions{
			Texture: args[0],
			Size:    mgl64.Vec2{spriteSize, spriteSize},
			Layout: object.SheetLayout{
				FrameWidth:  frameWidth,
				FrameHeight: frameHeight,
				FramesSpeed: frameSpeed,
				MaxFrames:   frames,
			},
		},
	})
}
