// Package export writes simulation snapshots and trajectories as SVG.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/deskstead/internal/metrics"
	"github.com/san-kum/deskstead/internal/physics"
	"github.com/san-kum/deskstead/internal/viz"
)

// Palette cycles through stroke colours for successive trajectories.
var Palette = []string{"#00ccff", "#ff9933", "#66ff66", "#ff66cc", "#ffee55"}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff88">
`, width, height, width, height)

	dotRadius := scale * 0.4
	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// Trajectories groups each movable body's positions by ID, in sample order.
func Trajectories(samples []metrics.Sample) ([]physics.ID, map[physics.ID][]mgl64.Vec2) {
	paths := make(map[physics.ID][]mgl64.Vec2)
	var ids []physics.ID
	for _, s := range samples {
		for _, bs := range s.Bodies {
			if _, ok := paths[bs.ID]; !ok {
				ids = append(ids, bs.ID)
			}
			paths[bs.ID] = append(paths[bs.ID], bs.Body.Position)
		}
	}
	return ids, paths
}

// TrajectoryToSVG draws body paths in world coordinates on a width x height
// screen. Screen y grows downward, as in the world. Paths with fewer than
// two points are skipped.
func TrajectoryToSVG(paths [][]mgl64.Vec2, width, height int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for i, points := range paths {
		if len(points) < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, Palette[i%len(Palette)])
		for j, p := range points {
			if j > 0 {
				sb.WriteString(" L")
			}
			fmt.Fprintf(&sb, "%.1f,%.1f", p.X(), p.Y())
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteTrajectories writes every body's path from samples to an SVG file.
func WriteTrajectories(path string, samples []metrics.Sample, width, height int) error {
	ids, byID := Trajectories(samples)
	paths := make([][]mgl64.Vec2, len(ids))
	for i, id := range ids {
		paths[i] = byID[id]
	}
	return writeFile(path, TrajectoryToSVG(paths, width, height))
}

// WriteSnapshot writes the canvas as an SVG of dots.
func WriteSnapshot(path string, canvas *viz.Canvas, scale float64) error {
	return writeFile(path, CanvasToSVG(canvas, scale))
}

func writeFile(path, svg string) error {
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
