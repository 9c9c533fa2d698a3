// Package ecs provides ECS adapters for guish node events.
//
// The primary adapter is [NewDonburiStore], which publishes every event the
// dispatcher raises into a [Donburi] world as a typed event. Subscribe to
// [NodeEventType] in your ECS systems to receive them.
//
// [Bindings] links nodes to entities: Bind creates an entity carrying a
// [NodeRef] and stamps its ID on the node, and Entry maps an event back to
// that entity.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene := guish.NewScene(guish.WithEntityStore(store))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
