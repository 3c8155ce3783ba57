package engine2d

// slotFlags records which fields of a slot are present.
type slotFlags uint8

const (
	flagLive   slotFlags = 1 << iota // transform present; slot is in use
	flagSprite                       // sprite present (renderable)
	flagBody                         // body present (physics)
	flagParent                       // parent link present
	flagCached                       // world transform cached this pass
)

// World is a flat entity store. Every slot index addresses one entry in each
// of the parallel arrays below; slotFlags say which of them hold data.
//
// A World is owned by a single goroutine (the frame loop). It performs no
// locking, and pointers returned by Transform, Sprite, and Body are only
// valid until the next Spawn, which may grow the arrays.
type World struct {
	flags       []slotFlags
	generations []uint32
	transforms  []Transform
	sprites     []Sprite
	bodies      []Body
	parents     []Entity
	cache       []Transform
	free        []uint32

	// resolution scratch, reused across passes
	state []resolveState
	stack []uint32

	sink EventSink
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{}
}

// SetEventSink sets the optional receiver of lifecycle events.
func (w *World) SetEventSink(sink EventSink) {
	w.sink = sink
}

func (w *World) emit(event LifecycleEvent) {
	if w.sink != nil {
		w.sink.EmitEvent(event)
	}
}

// Spawn creates a renderable entity. A nil body spawns an entity that
// physics ignores. Freed slots are reused before the store grows; a reused
// slot never carries a parent link, body, or cached world transform from its
// previous occupant.
func (w *World) Spawn(transform Transform, sprite Sprite, body *Body) Entity {
	sprite.Animation = sprite.Animation.clone()
	e := w.alloc()
	i := e.Index()
	w.transforms[i] = transform
	w.sprites[i] = sprite
	w.flags[i] = flagLive | flagSprite
	if body != nil {
		w.bodies[i] = *body
		w.flags[i] |= flagBody
	}
	w.emit(LifecycleEvent{Type: EventSpawned, Entity: e})
	return e
}

// SpawnContainer creates an entity with a transform but no sprite. It takes
// part in the hierarchy and physics but is never rendered.
func (w *World) SpawnContainer(transform Transform, body *Body) Entity {
	e := w.alloc()
	i := e.Index()
	w.transforms[i] = transform
	w.flags[i] = flagLive
	if body != nil {
		w.bodies[i] = *body
		w.flags[i] |= flagBody
	}
	w.emit(LifecycleEvent{Type: EventSpawned, Entity: e})
	return e
}

// alloc returns a cleared slot, popping the free list when possible.
func (w *World) alloc() Entity {
	if n := len(w.free); n > 0 {
		i := w.free[n-1]
		w.free = w.free[:n-1]
		w.clearSlot(i)
		return newEntity(i, w.generations[i])
	}

	i := uint32(len(w.flags))
	w.flags = append(w.flags, 0)
	w.generations = append(w.generations, 0)
	w.transforms = append(w.transforms, Transform{})
	w.sprites = append(w.sprites, Sprite{})
	w.bodies = append(w.bodies, Body{})
	w.parents = append(w.parents, 0)
	w.cache = append(w.cache, Transform{})
	return newEntity(i, 0)
}

func (w *World) clearSlot(i uint32) {
	w.flags[i] = 0
	w.transforms[i] = Transform{}
	w.sprites[i] = Sprite{}
	w.bodies[i] = Body{}
	w.parents[i] = 0
	w.cache[i] = Transform{}
}

// Destroy frees the entity's slot for reuse. Stale or unknown handles are
// ignored. Children keep their parent link; it no longer resolves, so they
// are treated as roots until re-parented.
func (w *World) Destroy(e Entity) {
	i, ok := w.index(e)
	if !ok {
		return
	}
	w.clearSlot(i)
	w.generations[i]++
	w.free = append(w.free, i)
	w.emit(LifecycleEvent{Type: EventDestroyed, Entity: e})
}

// index returns the slot index for a live, current-generation handle.
func (w *World) index(e Entity) (uint32, bool) {
	i := e.Index()
	if int(i) >= len(w.flags) {
		return 0, false
	}
	if w.flags[i]&flagLive == 0 || w.generations[i] != e.Generation() {
		return 0, false
	}
	return i, true
}

// Alive reports whether e refers to a live entity.
func (w *World) Alive(e Entity) bool {
	_, ok := w.index(e)
	return ok
}

// Len returns the number of slots, live or free.
func (w *World) Len() int {
	return len(w.flags)
}

// LiveCount returns the number of live entities.
func (w *World) LiveCount() int {
	return len(w.flags) - len(w.free)
}

// SetParent links child under parent. Invalid child handles are ignored.
// Only the child's cached world transform is invalidated; the next
// resolution pass recomputes everything regardless.
func (w *World) SetParent(child, parent Entity) {
	i, ok := w.index(child)
	if !ok {
		return
	}
	w.parents[i] = parent
	w.flags[i] = (w.flags[i] | flagParent) &^ flagCached
	w.emit(LifecycleEvent{Type: EventReparented, Entity: child, Parent: parent})
}

// ClearParent removes child's parent link, making it a root.
func (w *World) ClearParent(child Entity) {
	i, ok := w.index(child)
	if !ok || w.flags[i]&flagParent == 0 {
		return
	}
	w.parents[i] = 0
	w.flags[i] &^= flagParent | flagCached
	w.emit(LifecycleEvent{Type: EventUnparented, Entity: child})
}

// Parent returns the stored parent link of e. The link may be stale if the
// parent has since been destroyed.
func (w *World) Parent(e Entity) (Entity, bool) {
	i, ok := w.index(e)
	if !ok || w.flags[i]&flagParent == 0 {
		return 0, false
	}
	return w.parents[i], true
}

// Transform returns the local transform of e for in-place mutation, or nil if
// e is not alive. Mutations are picked up by the next resolution pass.
func (w *World) Transform(e Entity) *Transform {
	i, ok := w.index(e)
	if !ok {
		return nil
	}
	return &w.transforms[i]
}

// Sprite returns the sprite of e for in-place mutation, or nil if e is not
// alive or has no sprite.
func (w *World) Sprite(e Entity) *Sprite {
	i, ok := w.index(e)
	if !ok || w.flags[i]&flagSprite == 0 {
		return nil
	}
	return &w.sprites[i]
}

// Body returns the body of e for in-place mutation, or nil if e is not alive
// or has no body.
func (w *World) Body(e Entity) *Body {
	i, ok := w.index(e)
	if !ok || w.flags[i]&flagBody == 0 {
		return nil
	}
	return &w.bodies[i]
}

// SetBody attaches a body to e, or detaches it when body is nil.
func (w *World) SetBody(e Entity, body *Body) {
	i, ok := w.index(e)
	if !ok {
		return
	}
	if body == nil {
		w.bodies[i] = Body{}
		w.flags[i] &^= flagBody
		return
	}
	w.bodies[i] = *body
	w.flags[i] |= flagBody
}
