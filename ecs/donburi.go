// Package ecs provides ECS adapters for cadview.
package ecs

import (
	"github.com/phanxgames/cadview"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// CameraEventType is the Donburi event type for camera events.
// Subscribe to this in your ECS systems to react to interaction start/end
// and focus.
var CameraEventType = events.NewEventType[cadview.CameraEvent]()

// CameraComponent holds the camera state as of the most recent event.
var CameraComponent = donburi.NewComponentType[cadview.CameraState]()

type donburiStore struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiStore creates an EventSink backed by a Donburi world. Events
// are published to CameraEventType and can be consumed with
// events.Subscribe and ProcessEvents. The store also creates one entity
// carrying CameraComponent, updated on every event.
func NewDonburiStore(world donburi.World) cadview.EventSink {
	return &donburiStore{
		world:  world,
		entity: world.Create(CameraComponent),
	}
}

func (s *donburiStore) EmitEvent(event cadview.CameraEvent) {
	if s.world.Valid(s.entity) {
		CameraComponent.SetValue(s.world.Entry(s.entity), event.State)
	}
	CameraEventType.Publish(s.world, event)
}
