// Package ecs provides ECS adapters for trellis's interaction event system.
//
// The primary adapter is [NewDonburiStore], which bridges trellis semantic
// events (down, up, over, out, click, select) into a [Donburi] world as
// typed events. Subscribe to [InteractionEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	handler.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
