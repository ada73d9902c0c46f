package system

import (
	"github.com/milk9111/spacewalk/ecs"
	"github.com/milk9111/spacewalk/ecs/component"
)

// ResolveAirlock returns the airlock entity the crew member's physical
// state considers itself positioned at, or 0. The underlying field is
// written by the physics sensor pass; it is legitimately absent most of
// the time, so absence is a value here, not a failure.
func ResolveAirlock(w *ecs.World, crew ecs.Entity) ecs.Entity {
	status, ok := ecs.Get(w, crew, component.CrewStatusComponent.Kind())
	if !ok || status.AtAirlock == 0 {
		return 0
	}
	airlock := ecs.Entity(status.AtAirlock)
	if !ecs.IsAlive(w, airlock) {
		return 0
	}
	if !ecs.Has(w, airlock, component.AirlockComponent.Kind()) {
		return 0
	}
	return airlock
}
