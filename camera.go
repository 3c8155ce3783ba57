package engine2d

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is an orthographic view onto the world. World space is y-up; the
// camera position maps to the centre of the viewport and Zoom scales world
// units to pixels.
type Camera struct {
	Position Vec2
	// Zoom is the scale factor (1.0 = one world unit per pixel).
	Zoom float64

	// Viewport is the size of the render target in pixels.
	Viewport Vec2

	scrollTween *scrollAnim
}

// NewCamera creates a camera at the origin with zoom 1.
func NewCamera(viewport Vec2) *Camera {
	return &Camera{Zoom: 1, Viewport: viewport}
}

// ScrollTo animates the camera to the given world position over duration
// seconds. A non-positive duration moves the camera immediately.
func (c *Camera) ScrollTo(pos Vec2, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		c.Position = pos
		c.scrollTween = nil
		return
	}
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.Position.X), float32(pos.X), duration, easeFn),
		tweenY: gween.New(float32(c.Position.Y), float32(pos.Y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// CancelScroll stops any ScrollTo animation, leaving the camera where it is.
func (c *Camera) CancelScroll() {
	c.scrollTween = nil
}

// Update advances the scroll animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.scrollTween == nil {
		return
	}
	if !c.scrollTween.doneX {
		val, done := c.scrollTween.tweenX.Update(dt)
		c.Position.X = float64(val)
		c.scrollTween.doneX = done
	}
	if !c.scrollTween.doneY {
		val, done := c.scrollTween.tweenY.Update(dt)
		c.Position.Y = float64(val)
		c.scrollTween.doneY = done
	}
	if c.scrollTween.doneX && c.scrollTween.doneY {
		c.scrollTween = nil
	}
}

// viewMatrix maps world coordinates to viewport pixels:
//
//	screen = viewportCentre + zoom * (world - position), with y flipped.
func (c *Camera) viewMatrix() [6]float64 {
	z := c.Zoom
	project := [6]float64{z, 0, 0, -z, c.Viewport.X / 2, c.Viewport.Y / 2}
	recentre := [6]float64{1, 0, 0, 1, -c.Position.X, -c.Position.Y}
	return multiplyAffine(project, recentre)
}

// GeoM returns the view matrix as an ebiten.GeoM.
func (c *Camera) GeoM() ebiten.GeoM {
	m := c.viewMatrix()
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// WorldToScreen converts world coordinates to viewport pixels.
func (c *Camera) WorldToScreen(world Vec2) Vec2 {
	x, y := transformPoint(c.viewMatrix(), world.X, world.Y)
	return Vec2{x, y}
}

// ScreenToWorld converts viewport pixels to world coordinates.
func (c *Camera) ScreenToWorld(screen Vec2) Vec2 {
	x, y := transformPoint(invertAffine(c.viewMatrix()), screen.X, screen.Y)
	return Vec2{x, y}
}
