package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/render"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille-dot Renderer. World coordinates are mapped onto the
// (Width*2) x (Height*4) sub-pixel grid by the viewport.
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	world mgl64.Vec2
}

var _ render.Renderer = (*Canvas)(nil)

// NewCanvas creates a canvas of w x h terminal cells whose viewport equals
// its sub-pixel size.
func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		world:  mgl64.Vec2{float64(w * 2), float64(h * 4)},
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Viewport sets the world-space extent that fills the canvas.
func (c *Canvas) Viewport(width, height float64) {
	if width > 0 && height > 0 {
		c.world = mgl64.Vec2{width, height}
	}
}

// Project maps a world point to sub-pixel coordinates.
func (c *Canvas) Project(p mgl64.Vec2) (int, int) {
	sx := float64(c.Width*2) / c.world.X()
	sy := float64(c.Height*4) / c.world.Y()
	return int(math.Floor(p.X() * sx)), int(math.Floor(p.Y() * sy))
}

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// IsSet reports whether the sub-pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect outlines the rotated box. Fully transparent fills draw nothing.
func (c *Canvas) DrawRect(center, size mgl64.Vec2, rotation float64, fill color.RGBA) {
	if fill.A == 0 {
		return
	}
	c.outline(center, size, rotation)
}

// DrawTexture outlines the destination box; the canvas has no texels.
func (c *Canvas) DrawTexture(_ render.Texture, _ render.Region, center, size mgl64.Vec2, rotation float64, tint color.RGBA) {
	if tint.A == 0 {
		return
	}
	c.outline(center, size, rotation)
}

// DrawCircle fills the disc, lighting at least the centre dot.
func (c *Canvas) DrawCircle(center mgl64.Vec2, radius float64, fill color.RGBA) {
	if fill.A == 0 {
		return
	}
	cx, cy := c.Project(center)
	c.Set(cx, cy)
	x0, y0 := c.Project(center.Sub(mgl64.Vec2{radius, radius}))
	x1, y1 := c.Project(center.Add(mgl64.Vec2{radius, radius}))
	rx := float64(x1-x0) / 2
	ry := float64(y1-y0) / 2
	if rx <= 0 || ry <= 0 {
		return
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := (float64(x) - float64(cx)) / rx
			dy := (float64(y) - float64(cy)) / ry
			if dx*dx+dy*dy <= 1 {
				c.Set(x, y)
			}
		}
	}
}

func (c *Canvas) outline(center, size mgl64.Vec2, rotation float64) {
	half := size.Mul(0.5)
	corners := [4]mgl64.Vec2{
		{-half.X(), -half.Y()},
		{half.X(), -half.Y()},
		{half.X(), half.Y()},
		{-half.X(), half.Y()},
	}
	rot := mgl64.Rotate2D(rotation)
	var px, py [4]int
	for i, k := range corners {
		px[i], py[i] = c.Project(center.Add(rot.Mul2x1(k)))
	}
	for i := range corners {
		j := (i + 1) % 4
		c.DrawLine(px[i], py[i], px[j], py[j])
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
