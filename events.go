package engine2d

// EventSink is the interface for optional ECS integration.
// When set on a World, lifecycle events are forwarded to it synchronously.
type EventSink interface {
	EmitEvent(event LifecycleEvent)
}

// LifecycleEventType identifies a kind of lifecycle event.
type LifecycleEventType uint8

const (
	EventSpawned    LifecycleEventType = iota // a slot became live
	EventDestroyed                            // a slot was freed
	EventReparented                           // a parent link was set
	EventUnparented                           // a parent link was cleared
)

// String returns the event name.
func (t LifecycleEventType) String() string {
	switch t {
	case EventSpawned:
		return "spawned"
	case EventDestroyed:
		return "destroyed"
	case EventReparented:
		return "reparented"
	case EventUnparented:
		return "unparented"
	default:
		return "unknown"
	}
}

// LifecycleEvent carries lifecycle data for the ECS bridge.
type LifecycleEvent struct {
	Type   LifecycleEventType
	Entity Entity
	// Parent is set for EventReparented.
	Parent Entity
}
