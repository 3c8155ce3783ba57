package ecs

import (
	"github.com/phanxgames/engine2d"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType is the Donburi event type for engine2d lifecycle events.
var LifecycleEventType = events.NewEventType[engine2d.LifecycleEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Lifecycle events are published to LifecycleEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) engine2d.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event engine2d.LifecycleEvent) {
	LifecycleEventType.Publish(s.world, event)
}
