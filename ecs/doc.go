// Package ecs provides ECS adapters for cadview's camera events.
//
// The primary adapter is [NewDonburiStore], which bridges camera events
// (interaction start and end, focus) into a [Donburi] world as typed events
// and mirrors the latest camera state into [CameraComponent].
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	viewer.SetEventSink(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
