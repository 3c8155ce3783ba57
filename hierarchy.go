package engine2d

// resolveState tracks a slot during one resolution pass.
type resolveState uint8

const (
	stateUnresolved resolveState = iota
	stateVisiting                // on the stack, waiting for its parent
	stateResolved
)

// ResolveWorldTransforms recomputes the world transform of every live entity.
// The cache is cleared first, then each live slot is resolved in ascending
// index order; each slot is computed once per pass no matter how many
// descendants reach it.
//
// A parent link is ignored (the child resolves as a root) when it points at
// the child itself, at a freed or out-of-range slot, at a slot whose
// generation changed, or back into the chain currently being resolved.
func (w *World) ResolveWorldTransforms() {
	n := len(w.flags)
	if cap(w.state) < n {
		w.state = make([]resolveState, n)
	}
	w.state = w.state[:n]
	for i := range w.state {
		w.state[i] = stateUnresolved
		w.flags[i] &^= flagCached
	}

	for i := 0; i < n; i++ {
		if w.flags[i]&flagLive == 0 || w.state[i] == stateResolved {
			continue
		}
		w.resolve(uint32(i))
	}
}

// resolve computes the world transform of slot start and every unresolved
// ancestor it depends on, walking up with an explicit stack.
func (w *World) resolve(start uint32) {
	stack := append(w.stack[:0], start)
	w.state[start] = stateVisiting

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		p, ok := w.parentIndex(i)

		switch {
		case !ok:
			w.store(i, w.transforms[i])
		case w.state[p] == stateResolved:
			w.store(i, Combine(w.cache[p], w.transforms[i]))
		case w.state[p] == stateVisiting:
			// Cycle: this link closes it, so this slot becomes the root.
			w.store(i, w.transforms[i])
		default:
			w.state[p] = stateVisiting
			stack = append(stack, p)
			continue
		}
		stack = stack[:len(stack)-1]
	}
	w.stack = stack
}

func (w *World) store(i uint32, world Transform) {
	w.cache[i] = world
	w.flags[i] |= flagCached
	w.state[i] = stateResolved
}

// parentIndex returns the slot of i's parent when the link resolves to a
// different live slot of the same generation.
func (w *World) parentIndex(i uint32) (uint32, bool) {
	if w.flags[i]&flagParent == 0 {
		return 0, false
	}
	parent := w.parents[i]
	p := parent.Index()
	if p == i {
		return 0, false
	}
	if _, ok := w.index(parent); !ok {
		return 0, false
	}
	return p, true
}

// WorldTransform returns the world transform of e computed by the most recent
// resolution pass. The result is false if e is not alive or has not been
// resolved since it was spawned or re-parented.
func (w *World) WorldTransform(e Entity) (Transform, bool) {
	i, ok := w.index(e)
	if !ok || w.flags[i]&flagCached == 0 {
		return Transform{}, false
	}
	return w.cache[i], true
}

// EachSprite resolves world transforms, then calls fn for every live entity
// with a sprite, in ascending index order. The sprite pointer is only valid
// for the duration of the call.
func (w *World) EachSprite(fn func(e Entity, world Transform, sprite *Sprite)) {
	w.ResolveWorldTransforms()
	for i := range w.flags {
		f := w.flags[i]
		if f&(flagLive|flagSprite|flagCached) != flagLive|flagSprite|flagCached {
			continue
		}
		fn(newEntity(uint32(i), w.generations[i]), w.cache[i], &w.sprites[i])
	}
}
