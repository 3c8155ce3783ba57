package engine2d

// Default body coefficients used by NewBody.
const (
	DefaultDamping = 0.4
	DefaultBounce  = 0.75
)

// Body is the simple rigid-body state integrated by StepPhysics.
//
// Damping is intended to lie in [0, 1] per second. Bounce scales the speed
// an entity leaves a boundary with; it is applied to the magnitude of the
// incoming speed, not to the signed velocity.
type Body struct {
	Velocity Vec2
	Damping  float64
	Bounce   float64
}

// NewBody returns a body with the default damping and bounce coefficients.
func NewBody(velocity Vec2) Body {
	return Body{Velocity: velocity, Damping: DefaultDamping, Bounce: DefaultBounce}
}
