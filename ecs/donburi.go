// Package ecs provides ECS adapters for trellis.
package ecs

import (
	"github.com/phanxgames/trellis"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for trellis interaction
// events. Subscribe to this in your ECS systems to receive pointer
// interaction events.
var InteractionEventType = events.NewEventType[trellis.Event]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) trellis.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event trellis.Event) {
	InteractionEventType.Publish(s.world, event)
}
