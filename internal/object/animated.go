package object

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/render"
)

// SheetLayout describes a horizontal strip of equally sized frames.
type SheetLayout struct {
	FrameWidth  int
	FrameHeight int
	// FramesSpeed is the number of updates each frame stays on screen.
	FramesSpeed int
	MaxFrames   int
}

func (l SheetLayout) validate() error {
	if l.FrameWidth <= 0 || l.FrameHeight <= 0 {
		return fmt.Errorf("%w: frame %dx%d", ErrInvalidSheet, l.FrameWidth, l.FrameHeight)
	}
	if l.FramesSpeed <= 0 {
		return fmt.Errorf("%w: frames speed %d", ErrInvalidSheet, l.FramesSpeed)
	}
	if l.MaxFrames <= 0 {
		return fmt.Errorf("%w: max frames %d", ErrInvalidSheet, l.MaxFrames)
	}
	return nil
}

// Animated plays a sprite sheet. It starts paused on frame zero.
type Animated struct {
	texture  render.Texture
	layout   SheetLayout
	position mgl64.Vec2
	rotation float64
	size     mgl64.Vec2

	frame   int
	counter int
	playing bool
	looping bool
}

func NewAnimated(tex render.Texture, position, size mgl64.Vec2, layout SheetLayout) (*Animated, error) {
	if err := layout.validate(); err != nil {
		return nil, err
	}
	return &Animated{
		texture:  tex,
		layout:   layout,
		position: position,
		size:     size,
	}, nil
}

func (a *Animated) Play()                { a.playing = true }
func (a *Animated) Pause()               { a.playing = false }
func (a *Animated) SetLooping(loop bool) { a.looping = loop }
func (a *Animated) Playing() bool        { return a.playing }
func (a *Animated) Looping() bool        { return a.looping }
func (a *Animated) Frame() int           { return a.frame }

// Reset rewinds to the first frame without changing the play state.
func (a *Animated) Reset() {
	a.frame = 0
	a.counter = 0
}

// Update advances the frame counter once per call. A non-looping animation
// stops on its last frame.
func (a *Animated) Update(float64) {
	if !a.playing {
		return
	}
	a.counter++
	if a.counter < a.layout.FramesSpeed {
		return
	}
	a.counter = 0
	a.frame++
	if a.frame < a.layout.MaxFrames {
		return
	}
	if a.looping {
		a.frame = 0
		return
	}
	a.frame = a.layout.MaxFrames - 1
	a.playing = false
}

// Region is the part of the sheet shown for the current frame.
func (a *Animated) Region() render.Region {
	w, h := float64(a.layout.FrameWidth), float64(a.layout.FrameHeight)
	return render.Region{X: float64(a.frame) * w, W: w, H: h}
}

func (a *Animated) Draw(r render.Renderer) {
	if a.texture == nil {
		r.DrawRect(a.position, a.size, a.rotation, render.Gray)
		return
	}
	r.DrawTexture(a.texture, a.Region(), a.position, a.size, a.rotation, render.White)
}

func (a *Animated) Position() mgl64.Vec2     { return a.position }
func (a *Animated) SetPosition(p mgl64.Vec2) { a.position = p }
func (a *Animated) Rotation() float64        { return a.rotation }
func (a *Animated) SetRotation(r float64)    { a.rotation = r }
func (a *Animated) Size() mgl64.Vec2         { return a.size }
