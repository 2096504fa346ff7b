package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/deskstead/internal/config"
	"github.com/san-kum/deskstead/internal/scene"
	"github.com/spf13/cobra"
)

func newTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	configFile, preset = "", ""
	t.Cleanup(func() { configFile, preset = "", "" })

	cmd := &cobra.Command{Use: "test"}
	windowFlags(cmd)
	worldFlags(cmd)
	cmd.Flags().StringVar(&preset, "preset", "", "")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "")
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, cfg *config.Config)
		wantErr bool
		errIs   error
	}{
		{
			name: "fallback preset",
			check: func(t *testing.T, cfg *config.Config) {
				if len(cfg.Objects) != 1 || cfg.Objects[0].Mass != 100 {
					t.Errorf("objects = %+v, want the bounce crate", cfg.Objects)
				}
			},
		},
		{
			name: "named preset with overrides",
			args: []string{"--preset", "stack", "--dt", "0.005", "--width", "1024", "--time", "3"},
			check: func(t *testing.T, cfg *config.Config) {
				if len(cfg.Objects) != 6 {
					t.Errorf("objects = %d, want 6", len(cfg.Objects))
				}
				if cfg.World.Dt != 0.005 || cfg.Window.Width != 1024 || cfg.Duration != 3 {
					t.Errorf("overrides not applied: dt=%v width=%d duration=%v", cfg.World.Dt, cfg.Window.Width, cfg.Duration)
				}
				if cfg.World.Gravity != config.DefaultConfig().World.Gravity {
					t.Errorf("gravity = %v, unset flag must not override", cfg.World.Gravity)
				}
			},
		},
		{
			name:    "unknown preset",
			args:    []string{"--preset", "nope"},
			wantErr: true,
		},
		{
			name:    "invalid override",
			args:    []string{"--dt", "-1"},
			wantErr: true,
			errIs:   config.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newTestCmd(t, tt.args...)
			cfg, err := loadConfig(cmd, config.ModePhysics, "bounce")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if tt.errIs != nil && !errors.Is(err, tt.errIs) {
					t.Fatalf("error = %v, want %v", err, tt.errIs)
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfig() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deskstead.yaml")
	cfg := config.DefaultConfig()
	cfg.World.Gravity = 123
	if err := config.Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	cmd := newTestCmd(t, "--fps", "30")
	configFile = path

	got, err := loadConfig(cmd, config.ModePhysics, "bounce")
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if got.World.Gravity != 123 {
		t.Errorf("gravity = %v, want 123 from the file", got.World.Gravity)
	}
	if got.Window.FPS != 30 {
		t.Errorf("fps = %d, want 30 from the flag", got.Window.FPS)
	}
	if len(got.Objects) != 0 {
		t.Errorf("file config should not pick up preset objects")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cmd := newTestCmd(t)
	cfg, err := loadConfig(cmd, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Title != config.DefaultTitle {
		t.Errorf("title = %q", cfg.Window.Title)
	}
}

func TestFirstMovable(t *testing.T) {
	cfg := config.GetPreset(config.ModePhysics, "stack")
	phys, err := scene.NewPhysics(cfg, 800, 600, nil)
	if err != nil {
		t.Fatal(err)
	}
	id, ok := firstMovable(phys)
	if !ok {
		t.Fatal("no movable body")
	}
	e, _ := phys.World.Get(id)
	if e.PhysicsBody().Fixed() || e.PhysicsBody().Mass != 1 {
		t.Errorf("first movable = %+v, want the 1kg crate", e.PhysicsBody())
	}
}

func TestSortedKeys(t *testing.T) {
	got := sortedKeys(map[string]float64{"energy": 1, "bounces": 2, "containment": 3})
	want := []string{"bounces", "containment", "energy"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sortedKeys = %v, want %v", got, want)
		}
	}
}
