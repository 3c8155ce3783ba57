package engine2d

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteRenderer is the ebiten implementation of the rendering boundary. It
// keeps the most recent instance upload and draws every record as a textured
// quad through a camera.
type SpriteRenderer struct {
	// ClearColor fills the target before drawing. A zero alpha skips the fill.
	ClearColor Color

	texture   *ebiten.Image
	instances []Instance
	op        ebiten.DrawImageOptions
}

// NewSpriteRenderer creates a renderer with no texture.
func NewSpriteRenderer() *SpriteRenderer {
	return &SpriteRenderer{}
}

// SetTexture replaces the atlas texture used for drawing.
func (r *SpriteRenderer) SetTexture(img *ebiten.Image) {
	r.texture = img
}

// Texture returns the current atlas texture.
func (r *SpriteRenderer) Texture() *ebiten.Image {
	return r.texture
}

// UploadInstances replaces the stored instance set with a copy of instances.
// The backing buffer grows to the next power of two and is reused.
func (r *SpriteRenderer) UploadInstances(instances []Instance) {
	if cap(r.instances) < len(instances) {
		r.instances = make([]Instance, 0, nextPowerOfTwo(len(instances)))
	}
	r.instances = append(r.instances[:0], instances...)
}

// Instances returns the stored instance set. The slice MUST NOT be mutated.
func (r *SpriteRenderer) Instances() []Instance {
	return r.instances
}

// Draw renders the stored instances onto target.
func (r *SpriteRenderer) Draw(target *ebiten.Image, cam *Camera) {
	if r.ClearColor.A > 0 {
		target.Fill(r.ClearColor.toRGBA())
	}
	if r.texture == nil || len(r.instances) == 0 {
		return
	}

	view := cam.GeoM()
	bounds := r.texture.Bounds()
	tw, th := float64(bounds.Dx()), float64(bounds.Dy())

	for i := range r.instances {
		inst := &r.instances[i]
		sub := subRect(bounds, tw, th, inst)
		if sub.Empty() {
			continue
		}
		img := r.texture.SubImage(sub).(*ebiten.Image)
		sw, sh := float64(sub.Dx()), float64(sub.Dy())

		op := &r.op
		op.GeoM.Reset()
		// Centre the tile, flip it so its top faces +y, size it in world
		// units, then rotate and place it.
		op.GeoM.Translate(-sw/2, -sh/2)
		op.GeoM.Scale(float64(inst.Size[0])/sw, -float64(inst.Size[1])/sh)
		op.GeoM.Rotate(float64(inst.Rotation))
		op.GeoM.Translate(float64(inst.Position[0]), float64(inst.Position[1]))
		op.GeoM.Concat(view)

		op.ColorScale.Reset()
		a := inst.Color[3]
		op.ColorScale.Scale(inst.Color[0]*a, inst.Color[1]*a, inst.Color[2]*a, a)
		op.Filter = ebiten.FilterNearest

		target.DrawImage(img, op)
	}
}

// subRect converts an instance's UV rectangle to texture pixels.
func subRect(bounds image.Rectangle, tw, th float64, inst *Instance) image.Rectangle {
	x0 := bounds.Min.X + int(math.Round(float64(inst.UVMin[0])*tw))
	y0 := bounds.Min.Y + int(math.Round(float64(inst.UVMin[1])*th))
	x1 := bounds.Min.X + int(math.Round(float64(inst.UVMax[0])*tw))
	y1 := bounds.Min.Y + int(math.Round(float64(inst.UVMax[1])*th))
	return image.Rect(x0, y0, x1, y1)
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}
