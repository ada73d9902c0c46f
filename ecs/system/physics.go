package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spacewalk/ecs"
	"github.com/milk9111/spacewalk/ecs/component"
)

const (
	collisionTypeCrew cp.CollisionType = iota + 1
	collisionTypeSolid
	collisionTypeAirlock
	collisionTypeLadder
)

// surfaceGravity pulls EVA crew toward the deck. Vessels are static so it
// only affects crew bodies.
const surfaceGravity = 180.0

// PhysicsSystem owns the cp space. Crew are dynamic circles, vessel hulls
// static boxes, airlocks and ladders static sensors. Sensor begin/separate
// events are accumulated into per-crew contact state and flushed into
// CrewStatus after each step.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities    map[ecs.Entity]*bodyInfo
	crewShapes  map[*cp.Shape]ecs.Entity
	shapeOwners map[*cp.Shape]ecs.Entity
	contacts    map[ecs.Entity]*crewContactState
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	shapes []*cp.Shape
	static bool
}

type crewContactState struct {
	airlocks map[ecs.Entity]struct{}
	ladders  int
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: surfaceGravity})
	return &PhysicsSystem{
		space:       space,
		entities:    make(map[ecs.Entity]*bodyInfo),
		crewShapes:  make(map[*cp.Shape]ecs.Entity),
		shapeOwners: make(map[*cp.Shape]ecs.Entity),
		contacts:    make(map[ecs.Entity]*crewContactState),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = cp.NewSpace()
		ps.space.Iterations = 20
		ps.space.SetGravity(cp.Vector{X: 0, Y: surfaceGravity})
		ps.handlersReady = false
	}

	ps.ensureHandlers()
	ps.syncEntities(w)

	ps.space.Step(1.0)

	ps.syncTransforms(w)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) contactState(crew ecs.Entity) *crewContactState {
	st := ps.contacts[crew]
	if st == nil {
		st = &crewContactState{airlocks: map[ecs.Entity]struct{}{}}
		ps.contacts[crew] = st
	}
	return st
}

// crewAndOther resolves which side of an arbiter is a crew shape.
func (ps *PhysicsSystem) crewAndOther(arb *cp.Arbiter) (crew, other ecs.Entity, ok bool) {
	shapeA, shapeB := arb.Shapes()
	if e, isA := ps.crewShapes[shapeA]; isA {
		return e, ps.shapeOwners[shapeB], true
	}
	if e, isB := ps.crewShapes[shapeB]; isB {
		return e, ps.shapeOwners[shapeA], true
	}
	return 0, 0, false
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	airlockHandler := ps.space.NewCollisionHandler(collisionTypeCrew, collisionTypeAirlock)
	airlockHandler.UserData = ps
	airlockHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		if crew, airlock, ok := sys.crewAndOther(arb); ok && airlock.Valid() {
			sys.contactState(crew).airlocks[airlock] = struct{}{}
		}
		return true
	}
	airlockHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return
		}
		if crew, airlock, ok := sys.crewAndOther(arb); ok {
			delete(sys.contactState(crew).airlocks, airlock)
		}
	}

	ladderHandler := ps.space.NewCollisionHandler(collisionTypeCrew, collisionTypeLadder)
	ladderHandler.UserData = ps
	ladderHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		if crew, _, ok := sys.crewAndOther(arb); ok {
			sys.contactState(crew).ladders++
		}
		return true
	}
	ladderHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return
		}
		if crew, _, ok := sys.crewAndOther(arb); ok {
			st := sys.contactState(crew)
			if st.ladders > 0 {
				st.ladders--
			}
		}
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	if ps.space == nil {
		return
	}

	ps.cleanupEntities(w)

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		if info := ps.entities[e]; info != nil {
			if bodyComp.Body == nil || bodyComp.Shape == nil {
				bodyComp.Body = info.body
				bodyComp.Shape = info.shape
			}
			continue
		}

		info := ps.createBodyInfo(w, e, transform, bodyComp)
		if info == nil || info.shape == nil {
			continue
		}

		ps.entities[e] = info
		for _, shape := range info.shapes {
			ps.shapeOwners[shape] = e
		}
		if ecs.Has(w, e, component.CrewTagComponent.Kind()) {
			ps.crewShapes[info.shape] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
	}
}

func (ps *PhysicsSystem) createBodyInfo(w *ecs.World, e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	if ps.space == nil {
		return nil
	}

	isCrew := ecs.Has(w, e, component.CrewTagComponent.Kind())
	isAirlock := ecs.Has(w, e, component.AirlockTagComponent.Kind())
	isLadder := ecs.Has(w, e, component.LadderTagComponent.Kind())

	width := bodyComp.Width
	height := bodyComp.Height
	radius := bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width = 32
		height = 32
	}

	centerX := transform.X + bodyComp.OffsetX
	centerY := transform.Y + bodyComp.OffsetY

	info := &bodyInfo{static: bodyComp.Static || isAirlock || isLadder}

	if info.static {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, cp.Vector{X: centerX, Y: centerY})
		} else {
			bb := cp.BB{
				L: centerX - width/2,
				B: centerY - height/2,
				R: centerX + width/2,
				T: centerY + height/2,
			}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionTypeSolid)
		switch {
		case isAirlock:
			shape.SetCollisionType(collisionTypeAirlock)
			shape.SetSensor(true)
		case isLadder:
			shape.SetCollisionType(collisionTypeLadder)
			shape.SetSensor(true)
		case bodyComp.Sensor:
			shape.SetSensor(true)
		}
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.shape = shape
		info.shapes = []*cp.Shape{shape}
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	// Crew bodies never tumble.
	body := cp.NewBody(mass, cp.INFINITY)
	body.SetPosition(cp.Vector{X: centerX, Y: centerY})

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeSolid)
	if isCrew {
		shape.SetCollisionType(collisionTypeCrew)
	}
	if bodyComp.Sensor {
		shape.SetSensor(true)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.shape = shape
	info.shapes = []*cp.Shape{shape}
	return info
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	if w == nil {
		return
	}
	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || bodyComp.Body == nil || bodyComp.Static {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X - bodyComp.OffsetX
		transform.Y = pos.Y - bodyComp.OffsetY
	}
}

// flushContacts writes accumulated sensor overlap into CrewStatus. When a
// crew member overlaps several airlocks the lowest entity wins, which keeps
// the choice stable across ticks.
func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	for crew, st := range ps.contacts {
		if !ecs.IsAlive(w, crew) {
			delete(ps.contacts, crew)
			continue
		}
		status, ok := ecs.Get(w, crew, component.CrewStatusComponent.Kind())
		if !ok {
			continue
		}
		// Aboard crew have no body; their sensor state was cleared when the
		// body was removed.
		if status.Aboard != 0 {
			status.AtAirlock = 0
			status.ClimbTriggers = 0
			continue
		}

		var best ecs.Entity
		for airlock := range st.airlocks {
			if !ecs.IsAlive(w, airlock) {
				delete(st.airlocks, airlock)
				continue
			}
			if !best.Valid() || airlock < best {
				best = airlock
			}
		}
		if best.Valid() && uint64(best) != status.AtAirlock {
			w.Events().Push(ecs.Event{Type: "contact", Data: ecs.ContactEvent{
				Crew:   crew,
				Target: best,
				Kind:   ecs.ContactAirlock,
			}})
		}
		if st.ladders > 0 && status.ClimbTriggers == 0 {
			w.Events().Push(ecs.Event{Type: "contact", Data: ecs.ContactEvent{
				Crew: crew,
				Kind: ecs.ContactLadder,
			}})
		}
		status.AtAirlock = uint64(best)
		status.ClimbTriggers = st.ladders
	}
}

// SeatBlocked reports whether a solid body other than the crew member or
// the seat's own vessel hull occupies the seat position.
func (ps *PhysicsSystem) SeatBlocked(w *ecs.World, seat, crew ecs.Entity) bool {
	if ps == nil || ps.space == nil || w == nil {
		return false
	}
	st, ok := ecs.Get(w, seat, component.SeatComponent.Kind())
	if !ok {
		return false
	}
	tr, ok := ecs.Get(w, seat, component.TransformComponent.Kind())
	if !ok {
		return false
	}

	const half = 12.0
	bb := cp.BB{L: tr.X - half, B: tr.Y - half, R: tr.X + half, T: tr.Y + half}

	blocked := false
	ps.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, data interface{}) {
		if blocked || shape.Sensor() {
			return
		}
		owner := ps.shapeOwners[shape]
		if owner == crew || uint64(owner) == st.Vessel {
			return
		}
		blocked = true
	}, nil)
	return blocked
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}

		for _, shape := range info.shapes {
			if shape == nil || ps.space == nil {
				continue
			}
			ps.space.RemoveShape(shape)
			delete(ps.crewShapes, shape)
			delete(ps.shapeOwners, shape)
		}
		if info.body != nil && !info.static && ps.space != nil {
			ps.space.RemoveBody(info.body)
		}

		delete(ps.entities, e)
		delete(ps.contacts, e)
	}
}
