// Package ecs provides ECS adapters for movieclip's timeline events.
//
// The primary adapter is [NewDonburiStore], which bridges events from movie
// clips that carry an EntityID (frame label, loop complete, complete) into a
// [Donburi] world as typed events. Subscribe to [ClipEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
