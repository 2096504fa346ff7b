// Package viz renders simulations in a terminal.
//
// [Canvas] is a braille-dot implementation of render.Renderer: every body a
// World can draw to a raylib window it can also draw as 2x4-dot cells, so the
// same scene can be previewed over SSH or in CI logs. The lipgloss styles and
// the small widgets in this package are shared by the watch TUI and the sim
// command's summary.
package viz
