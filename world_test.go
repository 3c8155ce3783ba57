package engine2d

import "testing"

// recordingSink collects lifecycle events.
type recordingSink struct {
	events []LifecycleEvent
}

func (s *recordingSink) EmitEvent(e LifecycleEvent) {
	s.events = append(s.events, e)
}

func spawnAt(w *World, x, y float64) Entity {
	return w.Spawn(NewTransform(Vec2{x, y}), NewSprite(Splat(10), 0), nil)
}

func TestSpawnAppends(t *testing.T) {
	w := NewWorld()
	a := spawnAt(w, 0, 0)
	b := spawnAt(w, 1, 0)

	if a.Index() != 0 || b.Index() != 1 {
		t.Errorf("indices = %d, %d, want 0, 1", a.Index(), b.Index())
	}
	if w.Len() != 2 || w.LiveCount() != 2 {
		t.Errorf("Len = %d, LiveCount = %d, want 2, 2", w.Len(), w.LiveCount())
	}
	if tr := w.Transform(b); tr == nil || tr.Position.X != 1 {
		t.Errorf("Transform(b) = %v, want position x 1", tr)
	}
	if w.Body(a) != nil {
		t.Error("Body of a body-less spawn should be absent")
	}
}

func TestSpawnWithBody(t *testing.T) {
	w := NewWorld()
	body := NewBody(Vec2{3, 4})
	e := w.Spawn(NewTransform(Vec2{}), NewSprite(Splat(1), 0), &body)

	b := w.Body(e)
	if b == nil {
		t.Fatal("Body = nil, want body")
	}
	if b.Velocity != (Vec2{3, 4}) || b.Damping != DefaultDamping || b.Bounce != DefaultBounce {
		t.Errorf("Body = %+v", *b)
	}

	body.Velocity.X = 99
	if b.Velocity.X != 3 {
		t.Error("World aliases the caller's body")
	}
}

func TestSpawnContainerHasNoSprite(t *testing.T) {
	w := NewWorld()
	e := w.SpawnContainer(NewTransform(Vec2{5, 5}), nil)
	if w.Sprite(e) != nil {
		t.Error("container should have no sprite")
	}
	if w.Transform(e) == nil {
		t.Error("container should have a transform")
	}
}

func TestSpawnClonesAnimation(t *testing.T) {
	w := NewWorld()
	anim := NewAnimation([]uint32{0, 1}, 1)
	s := NewSprite(Splat(1), 0)
	s.Animation = anim
	a := w.Spawn(NewTransform(Vec2{}), s, nil)
	b := w.Spawn(NewTransform(Vec2{}), s, nil)

	if w.Sprite(a).Animation == anim || w.Sprite(a).Animation == w.Sprite(b).Animation {
		t.Fatal("animations must not be shared")
	}
	w.UpdateAnimations(1)
	if anim.Current() != 0 {
		t.Errorf("caller's animation advanced to %d", anim.Current())
	}
}

func TestDestroyFreesSlot(t *testing.T) {
	w := NewWorld()
	a := spawnAt(w, 0, 0)
	spawnAt(w, 1, 0)

	w.Destroy(a)
	if w.Alive(a) {
		t.Error("destroyed entity reports alive")
	}
	if w.Transform(a) != nil || w.Sprite(a) != nil {
		t.Error("accessors should be absent for a destroyed entity")
	}
	if w.LiveCount() != 1 {
		t.Errorf("LiveCount = %d, want 1", w.LiveCount())
	}

	// Destroying twice is a no-op.
	w.Destroy(a)
	if w.LiveCount() != 1 {
		t.Errorf("LiveCount after double destroy = %d, want 1", w.LiveCount())
	}
}

func TestSlotReuseIsClean(t *testing.T) {
	w := NewWorld()
	parent := spawnAt(w, 100, 100)
	body := NewBody(Vec2{50, 50})
	old := w.Spawn(NewTransform(Vec2{1, 2}), NewSprite(Splat(3), 2), &body)
	w.SetParent(old, parent)
	w.ResolveWorldTransforms()

	w.Destroy(old)
	reused := spawnAt(w, 7, 8)

	if reused.Index() != old.Index() {
		t.Fatalf("reused index = %d, want %d", reused.Index(), old.Index())
	}
	if reused == old {
		t.Fatal("reused handle equals the stale handle")
	}
	if reused.Generation() != old.Generation()+1 {
		t.Errorf("generation = %d, want %d", reused.Generation(), old.Generation()+1)
	}
	if w.Body(reused) != nil {
		t.Error("reused slot carries a body")
	}
	if _, ok := w.Parent(reused); ok {
		t.Error("reused slot carries a parent link")
	}
	if _, ok := w.WorldTransform(reused); ok {
		t.Error("reused slot carries a cached world transform")
	}
	if w.Len() != 2 {
		t.Errorf("Len = %d, want 2 (no growth)", w.Len())
	}

	w.ResolveWorldTransforms()
	got, _ := w.WorldTransform(reused)
	assertVec(t, "reused world position", got.Position, Vec2{7, 8})
}

func TestStaleHandleRejected(t *testing.T) {
	w := NewWorld()
	old := spawnAt(w, 0, 0)
	w.Destroy(old)
	fresh := spawnAt(w, 5, 5)

	if w.Alive(old) {
		t.Error("stale handle reports alive")
	}
	if w.Transform(old) != nil || w.Sprite(old) != nil || w.Body(old) != nil {
		t.Error("stale handle reaches the new occupant")
	}
	w.SetParent(old, fresh)
	if _, ok := w.Parent(fresh); ok {
		t.Error("SetParent through a stale child handle changed the slot")
	}
	w.Destroy(old)
	if !w.Alive(fresh) {
		t.Error("Destroy through a stale handle freed the new occupant")
	}
}

func TestOutOfRangeHandles(t *testing.T) {
	w := NewWorld()
	ghost := newEntity(42, 0)
	if w.Alive(ghost) || w.Transform(ghost) != nil || w.Sprite(ghost) != nil || w.Body(ghost) != nil {
		t.Error("out-of-range handle should be absent everywhere")
	}
	if _, ok := w.WorldTransform(ghost); ok {
		t.Error("WorldTransform of out-of-range handle should be absent")
	}
	w.SetParent(ghost, ghost)
	w.ClearParent(ghost)
	w.SetBody(ghost, nil)
	w.Destroy(ghost)
}

func TestSetBody(t *testing.T) {
	w := NewWorld()
	e := spawnAt(w, 0, 0)
	body := NewBody(Vec2{1, 0})
	w.SetBody(e, &body)
	if w.Body(e) == nil {
		t.Fatal("SetBody did not attach")
	}
	w.SetBody(e, nil)
	if w.Body(e) != nil {
		t.Error("SetBody(nil) did not detach")
	}
}

func TestParentAccessors(t *testing.T) {
	w := NewWorld()
	p := spawnAt(w, 0, 0)
	c := spawnAt(w, 1, 0)

	if _, ok := w.Parent(c); ok {
		t.Error("fresh entity has a parent")
	}
	w.SetParent(c, p)
	if got, ok := w.Parent(c); !ok || got != p {
		t.Errorf("Parent = %v, %v, want %v, true", got, ok, p)
	}
	w.ClearParent(c)
	if _, ok := w.Parent(c); ok {
		t.Error("ClearParent left a link")
	}
}

func TestLifecycleEvents(t *testing.T) {
	w := NewWorld()
	sink := &recordingSink{}
	w.SetEventSink(sink)

	p := spawnAt(w, 0, 0)
	c := spawnAt(w, 1, 0)
	w.SetParent(c, p)
	w.ClearParent(c)
	w.ClearParent(c) // no link, no event
	w.Destroy(c)
	w.Destroy(c) // stale, no event

	want := []LifecycleEvent{
		{Type: EventSpawned, Entity: p},
		{Type: EventSpawned, Entity: c},
		{Type: EventReparented, Entity: c, Parent: p},
		{Type: EventUnparented, Entity: c},
		{Type: EventDestroyed, Entity: c},
	}
	if len(sink.events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(sink.events), len(want), sink.events)
	}
	for i := range want {
		if sink.events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, sink.events[i], want[i])
		}
	}
}

func TestLifecycleEventTypeString(t *testing.T) {
	tests := []struct {
		typ  LifecycleEventType
		want string
	}{
		{EventSpawned, "spawned"},
		{EventDestroyed, "destroyed"},
		{EventReparented, "reparented"},
		{EventUnparented, "unparented"},
		{LifecycleEventType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestEntityString(t *testing.T) {
	e := newEntity(7, 3)
	if e.Index() != 7 || e.Generation() != 3 {
		t.Errorf("Index, Generation = %d, %d, want 7, 3", e.Index(), e.Generation())
	}
	if e.String() != "7:3" {
		t.Errorf("String = %q, want %q", e.String(), "7:3")
	}
}
