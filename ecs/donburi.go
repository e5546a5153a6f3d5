// Package ecs provides ECS adapters for movieclip.
package ecs

import (
	"github.com/phanxgames/movieclip"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ClipEventType is the Donburi event type for movie clip timeline events.
// Subscribe to this in your ECS systems to receive frame label, loop and
// completion notifications.
var ClipEventType = events.NewEventType[movieclip.ClipEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Clip events are published to ClipEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) movieclip.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event movieclip.ClipEvent) {
	ClipEventType.Publish(s.world, event)
}
