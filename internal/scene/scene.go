// Package scene turns a config into live simulation objects.
package scene

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/config"
	"github.com/san-kum/deskstead/internal/object"
	"github.com/san-kum/deskstead/internal/particle"
	"github.com/san-kum/deskstead/internal/physics"
	"github.com/san-kum/deskstead/internal/render"
)

// Physics is a world of config-built objects plus the pointer dragger.
type Physics struct {
	World   *physics.World[physics.Entity]
	Dragger *physics.Dragger[physics.Entity]

	floor    physics.ID
	hasFloor bool
}

// Floor returns the ID of the generated floor, if there is one.
func (p *Physics) Floor() (physics.ID, bool) {
	return p.floor, p.hasFloor
}

// Tick polls the pointer, steps the world and lets every object update its
// visual. A nil pointer skips dragging.
func (p *Physics) Tick(pointer render.Pointer, dt float64) (physics.TickStats, error) {
	if pointer != nil {
		p.Dragger.Update(p.World, pointer.Position(), pointer.Down(), dt)
	}
	stats, err := p.World.Step(dt)
	if err != nil {
		return stats, err
	}
	p.World.Each(func(_ physics.ID, e physics.Entity) bool {
		if g, ok := e.(object.GameObject); ok {
			g.Update(dt)
		}
		return true
	})
	return stats, nil
}

func (p *Physics) Draw(r render.Renderer) {
	p.World.Draw(r)
}

// NewPhysics builds the world for a screen of the given size. Textures that
// fail to load are logged and the object is drawn as a plain shape.
func NewPhysics(cfg *config.Config, width, height int, loader render.TextureLoader) (*Physics, error) {
	p := &Physics{
		World:   physics.NewWorld[physics.Entity](cfg.World.Options()...),
		Dragger: physics.NewDragger[physics.Entity](),
	}

	if cfg.World.Floor.Enabled {
		floor, err := NewFloor(cfg.World.Floor, width, height)
		if err != nil {
			return nil, err
		}
		p.floor = p.World.Add(floor)
		p.hasFloor = true
	}

	for i, oc := range cfg.Objects {
		obj, err := NewObject(oc, loader)
		if err != nil {
			return nil, fmt.Errorf("scene: object %d: %w", i, err)
		}
		p.World.Add(obj)
	}
	return p, nil
}

// NewFloor spans the whole width, centred Inset pixels above the bottom edge.
func NewFloor(fc config.FloorConfig, width, height int) (*object.PhysicsObject[object.GameObject], error) {
	w := float64(width)
	return object.NewPhysicsObjectBuilder().
		AtPosition(mgl64.Vec2{w / 2, float64(height) - fc.Inset}).
		WithSize(mgl64.Vec2{w, fc.Thickness}).
		WithColor(render.Gray).
		WithRestitution(fc.Restitution).
		WithFriction(fc.Friction).
		Fixed().
		Build()
}

func NewObject(oc config.ObjectConfig, loader render.TextureLoader) (*object.PhysicsObject[object.GameObject], error) {
	b := object.NewPhysicsObjectBuilder().
		AtPosition(oc.Position).
		WithSize(oc.Size).
		WithMass(oc.Mass).
		WithRestitution(oc.Restitution).
		WithFriction(oc.Friction).
		WithInitialVelocity(oc.Velocity).
		WithColor(oc.Color.Color())
	if oc.Fixed {
		b.Fixed()
	}
	if tex := loadTexture(loader, oc.Texture); tex != nil {
		b.WithTexture(tex)
	}
	return b.Build()
}

// NewParticles builds the emitter described by cfg at origin.
func NewParticles(cfg *config.Config, origin mgl64.Vec2, loader render.TextureLoader) (*particle.System, error) {
	b := particle.NewBuilder(origin).
		Settings(cfg.Particles.ParticleSettings()).
		Scale(cfg.Particles.SystemScale)
	if cfg.Seed != 0 {
		b.Seed(cfg.Seed)
	}
	if tex := loadTexture(loader, cfg.Particles.Texture); tex != nil {
		b.Texture(tex)
	}
	sys, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("scene: particles: %w", err)
	}
	return sys, nil
}

func loadTexture(loader render.TextureLoader, path string) render.Texture {
	if path == "" || loader == nil {
		return nil
	}
	tex, err := loader.Load(path)
	if err != nil {
		log.Printf("Scene: %v, drawing shapes instead", err)
		return nil
	}
	return tex
}
