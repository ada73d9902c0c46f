package ecs

import "github.com/milk9111/spacewalk/ecs/component"

// Kind is the non-generic view of a component kind, used where the world
// needs to address storages without knowing the component type.
type Kind interface {
	ID() component.ComponentID
}

// World owns entities, component storages, and the event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{stores: map[component.ComponentID]*SparseSet{}}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity marks an entity as dead and drops its components.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(int(e.id()))
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities in id order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.alive()
}

func (w *World) store(id component.ComponentID) *SparseSet {
	if w == nil {
		return nil
	}
	if w.stores == nil {
		w.stores = map[component.ComponentID]*SparseSet{}
	}
	s, ok := w.stores[id]
	if !ok {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

func (w *World) peekStore(id component.ComponentID) *SparseSet {
	if w == nil || w.stores == nil {
		return nil
	}
	return w.stores[id]
}

// First returns any one live entity carrying the kind.
func (w *World) First(k Kind) (Entity, bool) {
	if w == nil || k == nil {
		return 0, false
	}
	s := w.peekStore(k.ID())
	for _, id := range s.Entities() {
		e := w.entities.handle(entityID(id))
		if e.Valid() {
			return e, true
		}
	}
	return 0, false
}

// Query returns the live entities carrying every given kind, iterating the
// smallest storage.
func (w *World) Query(kinds ...Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	smallest := w.peekStore(kinds[0].ID())
	rest := make([]*SparseSet, 0, len(kinds)-1)
	for _, k := range kinds[1:] {
		s := w.peekStore(k.ID())
		if s.Len() < smallest.Len() {
			rest = append(rest, smallest)
			smallest = s
		} else {
			rest = append(rest, s)
		}
	}
	if smallest.Len() == 0 {
		return nil
	}

	out := make([]Entity, 0, smallest.Len())
	for _, id := range smallest.Entities() {
		e := w.entities.handle(entityID(id))
		if !e.Valid() {
			continue
		}
		all := true
		for _, s := range rest {
			if !s.Has(id) {
				all = false
				break
			}
		}
		if all {
			out = append(out, e)
		}
	}
	return out
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// entityStore tracks entity generations and free ids.
type entityStore struct {
	gens []generation
	dead []bool
	free []entityID
}

func (s *entityStore) create() Entity {
	if len(s.free) > 0 {
		id := s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
		s.dead[id-1] = false
		return makeEntity(id, s.gens[id-1])
	}
	s.gens = append(s.gens, 0)
	s.dead = append(s.dead, false)
	id := entityID(len(s.gens))
	return makeEntity(id, 0)
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.id() - 1
	s.gens[idx]++
	s.dead[idx] = true
	s.free = append(s.free, e.id())
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gens) {
		return false
	}
	return !s.dead[id-1] && s.gens[id-1] == e.generation()
}

// handle returns the live Entity for a raw id, or 0.
func (s *entityStore) handle(id entityID) Entity {
	if id == 0 || int(id) > len(s.gens) || s.dead[id-1] {
		return 0
	}
	return makeEntity(id, s.gens[id-1])
}

func (s *entityStore) alive() []Entity {
	out := make([]Entity, 0, len(s.gens))
	for i := range s.gens {
		if !s.dead[i] {
			out = append(out, makeEntity(entityID(i+1), s.gens[i]))
		}
	}
	return out
}
