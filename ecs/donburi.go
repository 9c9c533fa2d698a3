package ecs

import (
	"github.com/phanxgames/guish"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// NodeEventType is the Donburi event type for guish node events.
var NodeEventType = events.NewEventType[guish.NodeEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Events are queued on NodeEventType and delivered by ProcessEvents.
func NewDonburiStore(world donburi.World) guish.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event guish.NodeEvent) {
	NodeEventType.Publish(s.world, event)
}
