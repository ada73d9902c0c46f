package system

import (
	"github.com/milk9111/spacewalk/ecs"
	"github.com/milk9111/spacewalk/ecs/component"
)

// FocusSystem owns the SimFocus singleton: which vessel holds the view and
// which crew member local input drives. Switches requested while the world
// has a single controllable vessel are deferred to the start of the next
// tick through a one-entry pending slot; the slot is consumed before
// anything else runs so no later system observes a half-applied switch.
type FocusSystem struct {
	focusEntity ecs.Entity

	onChanged  func(w *ecs.World)
	onOverview func(w *ecs.World)
}

func NewFocusSystem() *FocusSystem {
	return &FocusSystem{}
}

// OnChanged registers a callback fired after the active vessel changes.
func (fs *FocusSystem) OnChanged(fn func(w *ecs.World)) {
	fs.onChanged = fn
}

// OnOverviewEntered registers a callback fired when overview mode opens.
func (fs *FocusSystem) OnOverviewEntered(fn func(w *ecs.World)) {
	fs.onOverview = fn
}

func (fs *FocusSystem) ensureFocus(w *ecs.World) (ecs.Entity, *component.SimFocus, bool) {
	if fs == nil || w == nil {
		return 0, nil, false
	}
	if fs.focusEntity.Valid() && ecs.IsAlive(w, fs.focusEntity) {
		if f, ok := ecs.Get(w, fs.focusEntity, component.SimFocusComponent.Kind()); ok {
			return fs.focusEntity, f, true
		}
	}
	if e, ok := w.First(component.SimFocusComponent.Kind()); ok {
		fs.focusEntity = e
		if f, ok := ecs.Get(w, e, component.SimFocusComponent.Kind()); ok {
			return e, f, true
		}
	}
	e := ecs.CreateEntity(w)
	f := &component.SimFocus{}
	if err := ecs.Add(w, e, component.SimFocusComponent.Kind(), f); err != nil {
		return 0, nil, false
	}
	fs.focusEntity = e
	return e, f, true
}

// Focus returns the live SimFocus singleton.
func (fs *FocusSystem) Focus(w *ecs.World) (*component.SimFocus, bool) {
	_, f, ok := fs.ensureFocus(w)
	return f, ok
}

func (fs *FocusSystem) Update(w *ecs.World) {
	if fs == nil || w == nil {
		return
	}
	focusEnt, focus, ok := fs.ensureFocus(w)
	if !ok {
		return
	}

	// Deferred switches apply before anything else this tick.
	if pending, ok := ecs.Get(w, focusEnt, component.PendingFocusSwitchComponent.Kind()); ok {
		target := ecs.Entity(pending.Vessel)
		ecs.Remove(w, focusEnt, component.PendingFocusSwitchComponent.Kind())
		if target.Valid() && ecs.IsAlive(w, target) {
			fs.setActiveVessel(w, focus, target)
		}
	}

	// The focused vessel may have been destroyed or lost control since last
	// tick; fall forward to the next controllable one.
	if !fs.activeControllable(w, focus) {
		fs.MaybeSwitch(w, true)
	}

	if input, ok := fs.localInput(w, focus); ok {
		if input.OverviewToggleEdge {
			focus.Overview = !focus.Overview
			if focus.Overview && fs.onOverview != nil {
				fs.onOverview(w)
			}
		}
		if input.CycleForwardEdge {
			fs.cycle(w, focus, true)
		} else if input.CycleBackwardEdge {
			fs.cycle(w, focus, false)
		}
	}
}

func (fs *FocusSystem) localInput(w *ecs.World, focus *component.SimFocus) (*component.Input, bool) {
	if crew := ecs.Entity(focus.ActiveCrew); crew.Valid() {
		if input, ok := ecs.Get(w, crew, component.InputComponent.Kind()); ok {
			return input, true
		}
	}
	e, ok := w.First(component.InputComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.InputComponent.Kind())
}

func (fs *FocusSystem) activeControllable(w *ecs.World, focus *component.SimFocus) bool {
	active := ecs.Entity(focus.ActiveVessel)
	if !active.Valid() || !ecs.IsAlive(w, active) {
		return false
	}
	vessel, ok := ecs.Get(w, active, component.VesselComponent.Kind())
	return ok && vessel.Controllable
}

func controllableVessels(w *ecs.World) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach(w, component.VesselComponent.Kind(), func(e ecs.Entity, v *component.Vessel) {
		if v.Controllable {
			out = append(out, e)
		}
	})
	return out
}

// MaybeSwitch moves focus off a vessel that is no longer a valid target.
// With several candidates the switch happens immediately; with exactly one
// it is deferred a tick so systems that already read focus this tick see a
// consistent view.
func (fs *FocusSystem) MaybeSwitch(w *ecs.World, forward bool) {
	focusEnt, focus, ok := fs.ensureFocus(w)
	if !ok {
		return
	}
	if fs.activeControllable(w, focus) {
		return
	}
	candidates := controllableVessels(w)
	switch len(candidates) {
	case 0:
	case 1:
		// Overwrites any unconsumed earlier deferral.
		ecs.Add(w, focusEnt, component.PendingFocusSwitchComponent.Kind(), &component.PendingFocusSwitch{
			Vessel: uint64(candidates[0]),
		})
	default:
		fs.setActiveVessel(w, focus, nextCandidate(candidates, ecs.Entity(focus.ActiveVessel), forward))
	}
}

// cycle steps focus through the controllable vessels in entity order.
func (fs *FocusSystem) cycle(w *ecs.World, focus *component.SimFocus, forward bool) {
	candidates := controllableVessels(w)
	if len(candidates) < 2 {
		return
	}
	fs.setActiveVessel(w, focus, nextCandidate(candidates, ecs.Entity(focus.ActiveVessel), forward))
}

func nextCandidate(candidates []ecs.Entity, current ecs.Entity, forward bool) ecs.Entity {
	cur := -1
	for i, c := range candidates {
		if c == current {
			cur = i
			break
		}
	}
	n := len(candidates)
	if cur < 0 {
		if forward {
			return candidates[0]
		}
		return candidates[n-1]
	}
	if forward {
		return candidates[(cur+1)%n]
	}
	return candidates[(cur-1+n)%n]
}

// ForceFocus switches the view to the given vessel immediately, bypassing
// the pending slot. Used when a transfer completes on a vessel the player
// is not watching.
func (fs *FocusSystem) ForceFocus(w *ecs.World, vessel ecs.Entity) {
	_, focus, ok := fs.ensureFocus(w)
	if !ok {
		return
	}
	if !vessel.Valid() || !ecs.IsAlive(w, vessel) {
		return
	}
	fs.setActiveVessel(w, focus, vessel)
}

func (fs *FocusSystem) setActiveVessel(w *ecs.World, focus *component.SimFocus, vessel ecs.Entity) {
	if uint64(vessel) == focus.ActiveVessel {
		return
	}
	focus.ActiveVessel = uint64(vessel)

	// A crew member aboard a different vessel no longer receives input.
	if crew := ecs.Entity(focus.ActiveCrew); crew.Valid() {
		status, ok := ecs.Get(w, crew, component.CrewStatusComponent.Kind())
		if !ok || (status.Aboard != 0 && status.Aboard != uint64(vessel)) {
			focus.ActiveCrew = 0
		}
	}

	if fs.onChanged != nil {
		fs.onChanged(w)
	}
}
