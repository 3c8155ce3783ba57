// Package termview draws engine2d instance sets into a terminal with tcell.
//
// Each instance becomes an axis-aligned block of shaded cells tinted with the
// instance color. Rotation and atlas UVs are ignored; the view is meant for
// headless runs and debugging over SSH, not for fidelity.
package termview

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/engine2d"
)

// DefaultCellAspect is the height of a terminal cell relative to its width.
const DefaultCellAspect = 2.0

// shades are picked by instance alpha, faintest first.
var shades = [...]rune{'░', '▒', '▓', '█'}

// Sink keeps the latest instance upload and draws it onto a tcell screen.
// It implements engine2d.InstanceSink.
type Sink struct {
	// CellAspect is the cell height over cell width. Vertical distances are
	// divided by it so sprites keep their proportions.
	CellAspect float64
	// Background is the style used to clear the screen.
	Background tcell.Style

	instances []engine2d.Instance
}

// New creates a sink with the default cell aspect.
func New() *Sink {
	return &Sink{CellAspect: DefaultCellAspect, Background: tcell.StyleDefault}
}

// UploadInstances replaces the stored instance set with a copy of instances.
func (s *Sink) UploadInstances(instances []engine2d.Instance) {
	s.instances = append(s.instances[:0], instances...)
}

// Len returns the number of stored instances.
func (s *Sink) Len() int {
	return len(s.instances)
}

// Draw clears screen and paints the stored instances through cam, in upload
// order, so later instances cover earlier ones. The camera viewport is taken
// from the screen size; cam itself is not modified. Show is left to the
// caller.
func (s *Sink) Draw(screen tcell.Screen, cam *engine2d.Camera) {
	screen.Fill(' ', s.Background)
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	aspect := s.CellAspect
	if aspect <= 0 {
		aspect = DefaultCellAspect
	}

	view := *cam
	view.CancelScroll()
	view.Viewport = engine2d.Vec2{X: float64(cols), Y: float64(rows) * aspect}

	for i := range s.instances {
		inst := &s.instances[i]
		if inst.Color[3] <= 0 {
			continue
		}
		centre := view.WorldToScreen(engine2d.Vec2{X: float64(inst.Position[0]), Y: float64(inst.Position[1])})
		hw := math.Abs(float64(inst.Size[0])) * view.Zoom / 2
		hh := math.Abs(float64(inst.Size[1])) * view.Zoom / 2

		x0 := max(int(math.Floor(centre.X-hw)), 0)
		x1 := min(int(math.Ceil(centre.X+hw)), cols)
		y0 := max(int(math.Floor((centre.Y-hh)/aspect)), 0)
		y1 := min(int(math.Ceil((centre.Y+hh)/aspect)), rows)
		if x0 >= x1 || y0 >= y1 {
			continue
		}

		glyph, style := cell(inst.Color, s.Background)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				screen.SetContent(x, y, glyph, nil, style)
			}
		}
	}
}

// cell returns the shade glyph and style for a straight-alpha color.
func cell(c [4]float32, bg tcell.Style) (rune, tcell.Style) {
	a := min(max(float64(c[3]), 0), 1)
	idx := min(int(a*float64(len(shades))), len(shades)-1)
	fg := tcell.NewRGBColor(channel(c[0]), channel(c[1]), channel(c[2]))
	return shades[idx], bg.Foreground(fg)
}

func channel(v float32) int32 {
	return int32(math.Round(min(max(float64(v), 0), 1) * 255))
}
