package tui

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/config"
	"github.com/san-kum/deskstead/internal/physics"
)

func newBounce(t *testing.T) Model {
	t.Helper()
	cfg := config.GetPreset(config.ModePhysics, "bounce")
	if cfg == nil {
		t.Fatal("bounce preset missing")
	}
	m, err := New(cfg, Options{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func crate(t *testing.T, m Model) *physics.Body {
	t.Helper()
	b, ok := m.tracked()
	if !ok {
		t.Fatal("no movable body")
	}
	return b
}

func TestNewBuildsScene(t *testing.T) {
	m := newBounce(t)
	if m.Physics() == nil || m.Particles() != nil {
		t.Fatal("bounce preview should simulate physics only")
	}
	if got := m.Physics().World.Len(); got != 2 {
		t.Errorf("bodies = %d, want floor + crate", got)
	}
	if m.Init() == nil {
		t.Error("Init() should schedule a tick")
	}
}

func TestNewInvalidObject(t *testing.T) {
	cfg := config.DefaultConfig()
	obj := config.DefaultObject(mgl64.Vec2{100, 50})
	obj.Mass = 0
	cfg.Objects = []config.ObjectConfig{obj}

	if _, err := New(cfg, Options{Width: 800, Height: 600}); !errors.Is(err, physics.ErrInvalidMass) {
		t.Errorf("New() error = %v, want ErrInvalidMass", err)
	}
}

func TestTickSteps(t *testing.T) {
	m := newBounce(t)
	dt := m.cfg.World.Dt

	m, cmd := send(t, m, tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if got := m.Physics().World.Elapsed(); math.Abs(got-dt) > 1e-12 {
		t.Errorf("elapsed = %v, want %v", got, dt)
	}
	if len(m.history) != 1 {
		t.Errorf("history len = %d, want 1", len(m.history))
	}
}

func TestPause(t *testing.T) {
	m := newBounce(t)
	m, _ = send(t, m, key(" "))
	if !m.Paused() {
		t.Fatal("space should pause")
	}
	m, _ = send(t, m, tickMsg(time.Now()))
	if got := m.Physics().World.Ticks(); got != 0 {
		t.Errorf("paused tick stepped the world %d times", got)
	}
	m, _ = send(t, m, key("p"))
	if m.Paused() {
		t.Error("p should resume")
	}
}

func TestSpeed(t *testing.T) {
	m := newBounce(t)
	m, _ = send(t, m, key("+"))
	m, _ = send(t, m, key("+"))
	if m.Speed() != 4 {
		t.Fatalf("speed = %d, want 4", m.Speed())
	}
	m, _ = send(t, m, tickMsg(time.Now()))
	if got := m.Physics().World.Ticks(); got != 4 {
		t.Errorf("ticks = %d, want 4", got)
	}

	for i := 0; i < 10; i++ {
		m, _ = send(t, m, key("+"))
	}
	if m.Speed() != maxSpeed {
		t.Errorf("speed = %d, want cap %d", m.Speed(), maxSpeed)
	}
	for i := 0; i < 10; i++ {
		m, _ = send(t, m, key("-"))
	}
	if m.Speed() != 1 {
		t.Errorf("speed = %d, want floor 1", m.Speed())
	}
}

func TestJump(t *testing.T) {
	m := newBounce(t)
	before := crate(t, m).Velocity.Y()

	m, _ = send(t, m, key("j"))

	if got := crate(t, m).Velocity.Y(); math.Abs(got-(before-JumpSpeed)) > 1e-9 {
		t.Errorf("vy = %v, want %v", got, before-JumpSpeed)
	}
	floor, _ := m.Physics().Floor()
	f, _ := m.Physics().World.Get(floor)
	if v := f.PhysicsBody().Velocity; v.Len() != 0 {
		t.Errorf("floor moved: %v", v)
	}
}

func TestReset(t *testing.T) {
	m := newBounce(t)
	for i := 0; i < 5; i++ {
		m, _ = send(t, m, tickMsg(time.Now()))
	}
	old := m.Physics()

	m, _ = send(t, m, key("r"))

	if m.Physics() == old {
		t.Error("reset kept the old scene")
	}
	if m.Physics().World.Ticks() != 0 || len(m.history) != 0 {
		t.Error("reset did not clear progress")
	}
}

func TestQuit(t *testing.T) {
	m := newBounce(t)
	_, cmd := send(t, m, key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestView(t *testing.T) {
	m := newBounce(t)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	m, _ = send(t, m, tickMsg(time.Now()))

	out := m.View()
	for _, s := range []string{config.DefaultTitle, "bodies", "running", "q quit"} {
		if !strings.Contains(out, s) {
			t.Errorf("view missing %q", s)
		}
	}
	if !strings.ContainsFunc(out, func(r rune) bool { return r > 0x2800 && r <= 0x28ff }) {
		t.Error("view has no lit braille cells")
	}

	m, _ = send(t, m, key(" "))
	if !strings.Contains(m.View(), "paused") {
		t.Error("paused view should say so")
	}
}

func TestParticlesPreview(t *testing.T) {
	cfg := config.GetPreset(config.ModeParticles, "snow")
	cfg.Seed = 7
	m, err := New(cfg, Options{Particles: true, Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for i := 0; i < 60; i++ {
		m, _ = send(t, m, tickMsg(time.Now()))
	}
	if m.Particles().Len() == 0 {
		t.Error("no particles after a second")
	}
	if !strings.Contains(m.View(), "particles") {
		t.Error("view should count particles")
	}
}
