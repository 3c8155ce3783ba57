// Package ecs provides ECS adapters for engine2d.
//
// The primary adapter is [NewDonburiSink], which forwards engine2d lifecycle
// events (spawned, destroyed, reparented, unparented) into a [Donburi] world
// as typed events. Subscribe to [LifecycleEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engineWorld.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
