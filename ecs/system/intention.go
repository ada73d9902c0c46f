package system

import (
	"github.com/milk9111/spacewalk/ecs"
	"github.com/milk9111/spacewalk/ecs/component"
)

// IntentResult reports what a single processing pass did for one crew
// member's intention.
type IntentResult int

const (
	IntentNone IntentResult = iota
	IntentBoarded
	IntentGrabbed
)

const (
	intentNoticeSeconds = 5.0

	// Seat catchment radii, world units. A fresh toggle reaches further
	// than the passive per-tick reattempt.
	seatReachSteady = 48.0
	seatReachFresh  = 160.0
)

// SeatBlocker answers whether physical clutter prevents a crew member from
// being placed into a seat.
type SeatBlocker interface {
	SeatBlocked(w *ecs.World, seat, crew ecs.Entity) bool
}

// IntentionSystem tracks one pending board/grab intention per crew member
// and retries each once per tick until it completes or is toggled off.
// Entries are processed in the order the intentions were first raised.
type IntentionSystem struct {
	notifier Notifier
	blocker  SeatBlocker
	focus    *FocusSystem

	order []ecs.Entity
	index map[ecs.Entity]struct{}
	// fresh marks entries whose board intent was raised this tick; their
	// seat search uses the wider catchment radius. Cleared when the
	// tick's processing ends, so passive reattempts always use the
	// steady radius.
	fresh map[ecs.Entity]struct{}
}

func NewIntentionSystem(notifier Notifier, blocker SeatBlocker, focus *FocusSystem) *IntentionSystem {
	is := &IntentionSystem{
		notifier: notifier,
		blocker:  blocker,
		focus:    focus,
		index:    map[ecs.Entity]struct{}{},
		fresh:    map[ecs.Entity]struct{}{},
	}
	if focus != nil {
		focus.OnChanged(is.OnFocusChanged)
		focus.OnOverviewEntered(is.OnOverviewEntered)
	}
	return is
}

// OnFocusChanged drops per-intention seat caches so the next search
// re-evaluates against the new view. Raised intentions themselves survive
// the switch.
func (is *IntentionSystem) OnFocusChanged(w *ecs.World) {
	if is == nil || w == nil {
		return
	}
	for _, crew := range is.order {
		if it, ok := ecs.Get(w, crew, component.IntentionComponent.Kind()); ok {
			it.SeatCache = nil
			it.SeatCacheValid = false
		}
	}
}

// OnOverviewEntered behaves like a focus change; toggles are refused while
// overview is up but existing intentions keep retrying.
func (is *IntentionSystem) OnOverviewEntered(w *ecs.World) {
	is.OnFocusChanged(w)
}

func (is *IntentionSystem) post(w *ecs.World, message string) {
	if is.notifier != nil {
		is.notifier.Post(w, message, intentNoticeSeconds)
	}
}

func crewName(w *ecs.World, e ecs.Entity) string {
	if crew, ok := ecs.Get(w, e, component.CrewComponent.Kind()); ok && crew.Name != "" {
		return crew.Name
	}
	return "Crew"
}

func (is *IntentionSystem) intentionAllowed(w *ecs.World, crew ecs.Entity) (*component.CrewStatus, bool) {
	if is == nil || w == nil || !ecs.IsAlive(w, crew) {
		return nil, false
	}
	if is.focus != nil {
		if focus, ok := is.focus.Focus(w); ok && (focus.Overview || focus.TextInputFocused) {
			return nil, false
		}
	}
	status, ok := ecs.Get(w, crew, component.CrewStatusComponent.Kind())
	if !ok || status.Busy {
		return nil, false
	}
	return status, true
}

func (is *IntentionSystem) getOrCreate(w *ecs.World, crew ecs.Entity) *component.Intention {
	if it, ok := ecs.Get(w, crew, component.IntentionComponent.Kind()); ok {
		if _, tracked := is.index[crew]; !tracked {
			is.order = append(is.order, crew)
			is.index[crew] = struct{}{}
		}
		return it
	}
	it := &component.Intention{}
	if err := ecs.Add(w, crew, component.IntentionComponent.Kind(), it); err != nil {
		return nil
	}
	is.order = append(is.order, crew)
	is.index[crew] = struct{}{}
	return it
}

// ToggleBoardIntent flips the board intention for a crew member. Raising it
// starts a fresh boarding episode: the seat cache and airlock edge state are
// discarded.
func (is *IntentionSystem) ToggleBoardIntent(w *ecs.World, crew ecs.Entity) {
	if _, ok := is.intentionAllowed(w, crew); !ok {
		return
	}
	it := is.getOrCreate(w, crew)
	if it == nil {
		return
	}
	if it.WantsBoard {
		it.WantsBoard = false
		delete(is.fresh, crew)
		is.post(w, crewName(w, crew)+" is hesitating")
		return
	}
	it.WantsBoard = true
	it.LastAirlock = 0
	it.SeatCache = nil
	it.SeatCacheValid = false
	is.fresh[crew] = struct{}{}
	is.post(w, crewName(w, crew)+" wants to board")
}

// ToggleGrabIntent flips the ladder-grab intention. Refused while already
// climbing.
func (is *IntentionSystem) ToggleGrabIntent(w *ecs.World, crew ecs.Entity) {
	status, ok := is.intentionAllowed(w, crew)
	if !ok || status.Climbing {
		return
	}
	it := is.getOrCreate(w, crew)
	if it == nil {
		return
	}
	if it.WantsGrab {
		it.WantsGrab = false
		is.post(w, crewName(w, crew)+" is hesitating")
		return
	}
	it.WantsGrab = true
	is.post(w, crewName(w, crew)+" wants to grab a ladder")
}

func (is *IntentionSystem) Update(w *ecs.World) {
	if is == nil || w == nil {
		return
	}

	// Key edges only drive the crew member the player controls.
	if is.focus != nil {
		if focus, ok := is.focus.Focus(w); ok {
			if crew := ecs.Entity(focus.ActiveCrew); crew.Valid() && ecs.IsAlive(w, crew) {
				if input, ok := ecs.Get(w, crew, component.InputComponent.Kind()); ok {
					if input.BoardPressed {
						is.ToggleBoardIntent(w, crew)
					}
					if input.GrabPressed {
						is.ToggleGrabIntent(w, crew)
					}
				}
			}
		}
	}

	var activeCrew ecs.Entity
	if is.focus != nil {
		if focus, ok := is.focus.Focus(w); ok {
			activeCrew = ecs.Entity(focus.ActiveCrew)
		}
	}

	for _, crew := range append([]ecs.Entity(nil), is.order...) {
		if !ecs.IsAlive(w, crew) {
			continue
		}
		it, ok := ecs.Get(w, crew, component.IntentionComponent.Kind())
		if !ok {
			continue
		}
		result := is.processTick(w, crew, it)
		if result != IntentBoarded {
			continue
		}
		if crew != activeCrew {
			if status, ok := ecs.Get(w, crew, component.CrewStatusComponent.Kind()); ok && status.Aboard != 0 && is.focus != nil {
				is.focus.ForceFocus(w, ecs.Entity(status.Aboard))
			}
		}
		RestoreCamera(w, it.Snapshot)
	}

	clear(is.fresh)
	is.prune(w)
}

// processTick runs one retry for one intention. Board takes priority over
// grab when both are raised.
func (is *IntentionSystem) processTick(w *ecs.World, crew ecs.Entity, it *component.Intention) IntentResult {
	if it.WantsBoard {
		return is.tryBoard(w, crew, it)
	}
	if it.WantsGrab {
		return is.tryGrab(w, crew, it)
	}
	return IntentNone
}

func (is *IntentionSystem) tryBoard(w *ecs.World, crew ecs.Entity, it *component.Intention) IntentResult {
	airlock := ResolveAirlock(w, crew)
	changed := uint64(airlock) != it.LastAirlock
	it.LastAirlock = uint64(airlock)

	if airlock.Valid() {
		if !changed {
			return IntentNone
		}
		al, ok := ecs.Get(w, airlock, component.AirlockComponent.Kind())
		if !ok {
			return IntentNone
		}
		vesselEnt := ecs.Entity(al.Vessel)
		vessel, ok := ecs.Get(w, vesselEnt, component.VesselComponent.Kind())
		if !ok || vessel.Packed {
			return IntentNone
		}
		it.Snapshot = CaptureCamera(w)
		if is.boardVessel(w, crew, airlock) {
			it.WantsBoard = false
			it.WantsGrab = false
			it.SeatCache = nil
			it.SeatCacheValid = false
			return IntentBoarded
		}
		// Airlock full. The intention stays raised; the next airlock edge
		// retries.
		return IntentNone
	}

	// Nowhere physical to enter through; fall back to the nearest open
	// seat, reattempted every tick.
	tr, ok := ecs.Get(w, crew, component.TransformComponent.Kind())
	if !ok {
		return IntentNone
	}
	reach := seatReachSteady
	if _, freshToggle := is.fresh[crew]; freshToggle {
		reach = seatReachFresh
	}
	seat := nearestOpenSeat(w, it, tr.X, tr.Y, reach*reach)
	if !seat.Valid() {
		return IntentNone
	}
	if is.blocker != nil && is.blocker.SeatBlocked(w, seat, crew) {
		return IntentNone
	}
	it.Snapshot = CaptureCamera(w)
	if is.occupySeat(w, crew, seat) {
		it.WantsBoard = false
		it.WantsGrab = false
		it.SeatCache = nil
		it.SeatCacheValid = false
		return IntentBoarded
	}
	return IntentNone
}

func (is *IntentionSystem) tryGrab(w *ecs.World, crew ecs.Entity, it *component.Intention) IntentResult {
	status, ok := ecs.Get(w, crew, component.CrewStatusComponent.Kind())
	if !ok {
		return IntentNone
	}
	if status.Climbing || status.ClimbTriggers == 0 {
		return IntentNone
	}
	if !BeginClimb(w, crew) {
		return IntentNone
	}
	it.WantsGrab = false
	is.post(w, crewName(w, crew)+" grabbed a ladder")
	return IntentGrabbed
}

// boardVessel moves a crew member through an airlock onto its vessel.
// Posts a rejection and returns false when the airlock has no room.
func (is *IntentionSystem) boardVessel(w *ecs.World, crew ecs.Entity, airlock ecs.Entity) bool {
	al, ok := ecs.Get(w, airlock, component.AirlockComponent.Kind())
	if !ok {
		return false
	}
	vesselEnt := ecs.Entity(al.Vessel)
	vessel, ok := ecs.Get(w, vesselEnt, component.VesselComponent.Kind())
	if !ok {
		return false
	}
	status, ok := ecs.Get(w, crew, component.CrewStatusComponent.Kind())
	if !ok {
		return false
	}
	if !al.Occupiable() {
		is.post(w, crewName(w, crew)+" cannot board "+vessel.Name+": airlock is full")
		return false
	}

	al.Crew++
	status.Aboard = al.Vessel
	status.AtAirlock = 0
	status.Climbing = false
	status.ClimbTriggers = 0
	ecs.Remove(w, crew, component.PhysicsBodyComponent.Kind())

	is.post(w, crewName(w, crew)+" boarded "+vessel.Name)
	return true
}

// occupySeat places a crew member directly into an open seat.
func (is *IntentionSystem) occupySeat(w *ecs.World, crew ecs.Entity, seat ecs.Entity) bool {
	st, ok := ecs.Get(w, seat, component.SeatComponent.Kind())
	if !ok || !st.Open() {
		return false
	}
	status, ok := ecs.Get(w, crew, component.CrewStatusComponent.Kind())
	if !ok {
		return false
	}

	st.Occupant = uint64(crew)
	status.Seated = uint64(seat)
	status.Aboard = st.Vessel
	status.AtAirlock = 0
	status.Climbing = false
	status.ClimbTriggers = 0
	ecs.Remove(w, crew, component.PhysicsBodyComponent.Kind())

	name := crewName(w, crew)
	if vessel, ok := ecs.Get(w, ecs.Entity(st.Vessel), component.VesselComponent.Kind()); ok {
		is.post(w, name+" took a seat aboard "+vessel.Name)
	} else {
		is.post(w, name+" took a seat")
	}
	return true
}

// prune drops completed or orphaned entries while preserving the order of
// the survivors.
func (is *IntentionSystem) prune(w *ecs.World) {
	kept := is.order[:0]
	for _, crew := range is.order {
		if ecs.IsAlive(w, crew) {
			if it, ok := ecs.Get(w, crew, component.IntentionComponent.Kind()); ok && !it.Completed() {
				kept = append(kept, crew)
				continue
			}
			ecs.Remove(w, crew, component.IntentionComponent.Kind())
		}
		delete(is.index, crew)
		delete(is.fresh, crew)
	}
	is.order = kept
}

// Pending returns the crew entities with live intentions in raise order.
func (is *IntentionSystem) Pending() []ecs.Entity {
	if is == nil {
		return nil
	}
	return append([]ecs.Entity(nil), is.order...)
}
