package engine2d

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState tracks held keys and the keys that changed state this frame.
type InputState struct {
	pressed      map[ebiten.Key]struct{}
	justPressed  map[ebiten.Key]struct{}
	justReleased map[ebiten.Key]struct{}

	keyBuf []ebiten.Key
}

// NewInputState creates an empty input state.
func NewInputState() *InputState {
	return &InputState{
		pressed:      make(map[ebiten.Key]struct{}),
		justPressed:  make(map[ebiten.Key]struct{}),
		justReleased: make(map[ebiten.Key]struct{}),
	}
}

// Poll reads this tick's keyboard transitions from ebiten.
func (in *InputState) Poll() {
	in.keyBuf = inpututil.AppendJustPressedKeys(in.keyBuf[:0])
	for _, k := range in.keyBuf {
		in.SetKey(k, true)
	}
	in.keyBuf = inpututil.AppendJustReleasedKeys(in.keyBuf[:0])
	for _, k := range in.keyBuf {
		in.SetKey(k, false)
	}
}

// SetKey records a key transition. Repeated presses of a held key and
// releases of a key that is not held are ignored.
func (in *InputState) SetKey(key ebiten.Key, pressed bool) {
	if pressed {
		if _, held := in.pressed[key]; !held {
			in.pressed[key] = struct{}{}
			in.justPressed[key] = struct{}{}
		}
		return
	}
	if _, held := in.pressed[key]; held {
		delete(in.pressed, key)
		in.justReleased[key] = struct{}{}
	}
}

// IsPressed reports whether key is held.
func (in *InputState) IsPressed(key ebiten.Key) bool {
	_, ok := in.pressed[key]
	return ok
}

// IsJustPressed reports whether key went down this frame.
func (in *InputState) IsJustPressed(key ebiten.Key) bool {
	_, ok := in.justPressed[key]
	return ok
}

// IsJustReleased reports whether key went up this frame.
func (in *InputState) IsJustReleased(key ebiten.Key) bool {
	_, ok := in.justReleased[key]
	return ok
}

// FinishFrame clears this frame's transitions. Held keys stay held.
func (in *InputState) FinishFrame() {
	clear(in.justPressed)
	clear(in.justReleased)
}

// axis returns -1, 0 or 1 from a pair of opposing keys.
func (in *InputState) axis(negative, positive ebiten.Key) float64 {
	v := 0.0
	if in.IsPressed(negative) {
		v--
	}
	if in.IsPressed(positive) {
		v++
	}
	return v
}
