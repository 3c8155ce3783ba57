package engine2d

import (
	"slices"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation cycles through a fixed list of atlas tiles at a constant rate.
// It is owned by exactly one Sprite.
type Animation struct {
	Frames []uint32
	FPS    float64

	timer   float64
	current int
}

// NewAnimation creates an animation starting on the first frame.
func NewAnimation(frames []uint32, fps float64) *Animation {
	return &Animation{Frames: frames, FPS: fps}
}

// Current returns the index into Frames of the frame being shown.
func (a *Animation) Current() int {
	return a.current
}

// Update advances the animation by dt seconds and returns the tile to show.
// Several frames are skipped in one call when dt spans several frame
// intervals. The second result is false when the animation has no frames or
// a non-positive FPS, in which case nothing changes.
func (a *Animation) Update(dt float64) (uint32, bool) {
	if len(a.Frames) == 0 || a.FPS <= 0 {
		return 0, false
	}
	if a.current >= len(a.Frames) {
		a.current = 0
	}

	frameTime := 1.0 / a.FPS
	a.timer += dt
	for a.timer >= frameTime {
		a.timer -= frameTime
		a.current = (a.current + 1) % len(a.Frames)
	}
	return a.Frames[a.current], true
}

func (a *Animation) clone() *Animation {
	if a == nil {
		return nil
	}
	c := *a
	c.Frames = slices.Clone(a.Frames)
	return &c
}

// UpdateAnimations advances every sprite animation by dt and applies sprite
// spin to the local rotation of every live sprite, animated or not.
func (w *World) UpdateAnimations(dt float64) {
	for i := range w.flags {
		if w.flags[i]&(flagLive|flagSprite) != flagLive|flagSprite {
			continue
		}
		sprite := &w.sprites[i]
		if sprite.Animation != nil {
			if frame, ok := sprite.Animation.Update(dt); ok {
				sprite.TileIndex = frame
			}
		}
		w.transforms[i].Rotation += sprite.Spin * dt
	}
}

// --- Tweens ---

// tweenField names the entity property a tween writes to.
type tweenField uint8

const (
	fieldPositionX tweenField = iota
	fieldPositionY
	fieldScaleX
	fieldScaleY
	fieldRotation
	fieldColorR
	fieldColorG
	fieldColorB
	fieldColorA
)

// TweenGroup animates up to 4 float properties of one entity simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenColor, TweenRotation) and call Update(dt) each step. If the target
// entity is destroyed, the group stops immediately.
//
// There is no global animation manager; callers own and update groups.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]tweenField
	world  *World
	target Entity
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target. If the target is no longer alive, Done is set and nothing is
// written.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if !g.world.Alive(g.target) {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.write(g.fields[i], float64(val))
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

func (g *TweenGroup) write(field tweenField, v float64) {
	if field >= fieldColorR {
		s := g.world.Sprite(g.target)
		if s == nil {
			return
		}
		switch field {
		case fieldColorR:
			s.Color.R = v
		case fieldColorG:
			s.Color.G = v
		case fieldColorB:
			s.Color.B = v
		case fieldColorA:
			s.Color.A = v
		}
		return
	}

	t := g.world.Transform(g.target)
	if t == nil {
		return
	}
	switch field {
	case fieldPositionX:
		t.Position.X = v
	case fieldPositionY:
		t.Position.Y = v
	case fieldScaleX:
		t.Scale.X = v
	case fieldScaleY:
		t.Scale.Y = v
	case fieldRotation:
		t.Rotation = v
	}
}

func newTweenGroup(w *World, e Entity) *TweenGroup {
	g := &TweenGroup{world: w, target: e}
	// Stale or freed targets produce an already finished group.
	g.Done = !w.Alive(e)
	return g
}

func (g *TweenGroup) add(field tweenField, from, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(from), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// TweenPosition creates a TweenGroup that moves the entity's local position
// to the target over duration seconds using the easing function.
func TweenPosition(w *World, e Entity, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(w, e)
	if t := w.Transform(e); t != nil {
		g.add(fieldPositionX, t.Position.X, to.X, duration, fn)
		g.add(fieldPositionY, t.Position.Y, to.Y, duration, fn)
	}
	return g
}

// TweenScale creates a TweenGroup that animates the entity's local scale.
func TweenScale(w *World, e Entity, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(w, e)
	if t := w.Transform(e); t != nil {
		g.add(fieldScaleX, t.Scale.X, to.X, duration, fn)
		g.add(fieldScaleY, t.Scale.Y, to.Y, duration, fn)
	}
	return g
}

// TweenRotation creates a TweenGroup that animates the entity's local
// rotation.
func TweenRotation(w *World, e Entity, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(w, e)
	if t := w.Transform(e); t != nil {
		g.add(fieldRotation, t.Rotation, to, duration, fn)
	}
	return g
}

// TweenColor creates a TweenGroup that animates all four components of the
// entity's sprite color. Entities without a sprite produce a finished group.
func TweenColor(w *World, e Entity, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(w, e)
	s := w.Sprite(e)
	if s == nil {
		g.Done = true
		return g
	}
	g.add(fieldColorR, s.Color.R, to.R, duration, fn)
	g.add(fieldColorG, s.Color.G, to.G, duration, fn)
	g.add(fieldColorB, s.Color.B, to.B, duration, fn)
	g.add(fieldColorA, s.Color.A, to.A, duration, fn)
	return g
}
