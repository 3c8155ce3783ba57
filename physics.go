package engine2d

import "math"

// StepPhysics integrates every entity that has a body by dt seconds, then
// keeps it inside the rectangle [-bounds, +bounds].
//
// Damping is a first-order factor clamp(1 - damping*dt, 0, 1) so large
// damping stops a body instead of reversing it. Position uses explicit Euler.
// On leaving the rectangle along an axis the position is clamped to the edge
// and the velocity on that axis is redirected inward with its magnitude
// scaled by Bounce, whatever its previous sign. Axes are handled
// independently, x first. There is no sub-stepping; fast bodies may skip
// past an edge within one step and are clamped back afterwards.
func (w *World) StepPhysics(dt float64, bounds Vec2) {
	for i := range w.flags {
		if w.flags[i]&(flagLive|flagBody) != flagLive|flagBody {
			continue
		}
		t := &w.transforms[i]
		b := &w.bodies[i]

		damping := clamp01(1 - b.Damping*dt)
		b.Velocity = b.Velocity.Scale(damping)
		t.Position = t.Position.Add(b.Velocity.Scale(dt))

		t.Position.X, b.Velocity.X = bounceAxis(t.Position.X, b.Velocity.X, bounds.X, b.Bounce)
		t.Position.Y, b.Velocity.Y = bounceAxis(t.Position.Y, b.Velocity.Y, bounds.Y, b.Bounce)
	}
}

// bounceAxis clamps pos to [-limit, limit] and, when clamped, points vel
// inward with magnitude |vel|*bounce.
func bounceAxis(pos, vel, limit, bounce float64) (float64, float64) {
	switch {
	case pos < -limit:
		return -limit, math.Abs(vel) * bounce
	case pos > limit:
		return limit, -math.Abs(vel) * bounce
	}
	return pos, vel
}

