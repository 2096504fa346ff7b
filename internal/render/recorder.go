package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

type CallKind int

const (
	CallTexture CallKind = iota
	CallCircle
	CallRect
)

// Call is one recorded draw.
type Call struct {
	Kind     CallKind
	Texture  Texture
	Region   Region
	Center   mgl64.Vec2
	Size     mgl64.Vec2
	Radius   float64
	Rotation float64
	Color    color.RGBA
	Batch    int
}

// Recorder is a Renderer that remembers every call instead of drawing. It
// backs headless runs and tests.
type Recorder struct {
	Calls   []Call
	Batches int
	open    bool
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) DrawTexture(tex Texture, src Region, center, size mgl64.Vec2, rotation float64, tint color.RGBA) {
	r.Calls = append(r.Calls, Call{Kind: CallTexture, Texture: tex, Region: src, Center: center, Size: size, Rotation: rotation, Color: tint, Batch: r.Batches})
}

func (r *Recorder) DrawCircle(center mgl64.Vec2, radius float64, fill color.RGBA) {
	r.Calls = append(r.Calls, Call{Kind: CallCircle, Center: center, Radius: radius, Color: fill, Batch: r.Batches})
}

func (r *Recorder) DrawRect(center, size mgl64.Vec2, rotation float64, fill color.RGBA) {
	r.Calls = append(r.Calls, Call{Kind: CallRect, Center: center, Size: size, Rotation: rotation, Color: fill, Batch: r.Batches})
}

func (r *Recorder) BeginBatch() {
	r.open = true
}

func (r *Recorder) EndBatch() {
	if r.open {
		r.Batches++
		r.open = false
	}
}

// Count returns the number of recorded calls of the given kind.
func (r *Recorder) Count(kind CallKind) int {
	n := 0
	for _, c := range r.Calls {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
	r.Batches = 0
	r.open = false
}

// StaticTexture is a Texture with fixed dimensions and no backing image.
type StaticTexture struct {
	W, H int
}

func (t StaticTexture) Width() int  { return t.W }
func (t StaticTexture) Height() int { return t.H }
