// Package rlrender implements the render collaborators on top of raylib.
// Every function here must run on the thread that opened the window.
package rlrender

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/render"
)

var ErrTextureLoad = errors.New("rlrender: texture load failed")

type Texture struct {
	tex rl.Texture2D
}

func (t *Texture) Width() int  { return int(t.tex.Width) }
func (t *Texture) Height() int { return int(t.tex.Height) }

// Unload frees the GPU copy. The texture must not be drawn afterwards.
func (t *Texture) Unload() {
	if t.tex.ID != 0 {
		rl.UnloadTexture(t.tex)
		t.tex = rl.Texture2D{}
	}
}

// Loader loads textures and remembers them so they can be freed together.
type Loader struct {
	loaded []*Texture
}

func NewLoader() *Loader {
	return &Loader{}
}

func (l *Loader) Load(path string) (render.Texture, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTextureLoad, path, err)
	}
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTextureLoad, path)
	}
	t := &Texture{tex: tex}
	l.loaded = append(l.loaded, t)
	return t, nil
}

// UnloadAll frees every texture this loader produced.
func (l *Loader) UnloadAll() {
	for _, t := range l.loaded {
		t.Unload()
	}
	l.loaded = nil
}

// Renderer draws through raylib's immediate-mode API. It must be used
// between rl.BeginDrawing and rl.EndDrawing.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) DrawTexture(tex render.Texture, src render.Region, center, size mgl64.Vec2, rotation float64, tint color.RGBA) {
	t, ok := tex.(*Texture)
	if !ok || t.tex.ID == 0 {
		r.DrawRect(center, size, rotation, tint)
		return
	}
	rl.DrawTexturePro(
		t.tex,
		rl.NewRectangle(float32(src.X), float32(src.Y), float32(src.W), float32(src.H)),
		rl.NewRectangle(float32(center.X()), float32(center.Y()), float32(size.X()), float32(size.Y())),
		rl.NewVector2(float32(size.X()/2), float32(size.Y()/2)),
		degrees(rotation),
		toColor(tint),
	)
}

func (r *Renderer) DrawCircle(center mgl64.Vec2, radius float64, fill color.RGBA) {
	rl.DrawCircleV(toVector(center), float32(radius), toColor(fill))
}

func (r *Renderer) DrawRect(center, size mgl64.Vec2, rotation float64, fill color.RGBA) {
	rl.DrawRectanglePro(
		rl.NewRectangle(float32(center.X()), float32(center.Y()), float32(size.X()), float32(size.Y())),
		rl.NewVector2(float32(size.X()/2), float32(size.Y()/2)),
		degrees(rotation),
		toColor(fill),
	)
}

// BeginBatch and EndBatch bracket a blend-mode scope; ending it makes raylib
// flush the vertices queued so far.
func (r *Renderer) BeginBatch() { rl.BeginBlendMode(rl.BlendAlpha) }
func (r *Renderer) EndBatch()   { rl.EndBlendMode() }

// Mouse reads the cursor relative to the window.
type Mouse struct{}

func (Mouse) Position() mgl64.Vec2 {
	p := rl.GetMousePosition()
	return mgl64.Vec2{float64(p.X), float64(p.Y)}
}

func (Mouse) Down() bool {
	return rl.IsMouseButtonDown(rl.MouseButtonLeft)
}

func toVector(v mgl64.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X()), float32(v.Y()))
}

func toColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func degrees(rad float64) float32 {
	return float32(rad * 180 / math.Pi)
}
