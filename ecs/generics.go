package ecs

import "github.com/milk9111/spacewalk/ecs/component"

// Add attaches a component to a live entity, replacing any existing one.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	w.store(kind.ID()).Set(int(e.id()), value)
	return nil
}

// Remove detaches a component from an entity if present.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !kind.Valid() {
		return false
	}
	return w.peekStore(kind.ID()).Remove(int(e.id()))
}

// Has reports whether a live entity carries the component.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !IsAlive(w, e) {
		return false
	}
	return w.peekStore(kind.ID()).Has(int(e.id()))
}

// Get returns the component for a live entity.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil || !IsAlive(w, e) {
		return nil, false
	}
	v := w.peekStore(kind.ID()).Get(int(e.id()))
	if v == nil {
		return nil, false
	}
	cast, ok := v.(*T)
	if !ok {
		return nil, false
	}
	return cast, true
}

// ForEach visits every live entity carrying the kind.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(e Entity, v *T)) {
	if w == nil || fn == nil {
		return
	}
	s := w.peekStore(kind.ID())
	ids := append([]int(nil), s.Entities()...)
	for _, id := range ids {
		e := w.entities.handle(entityID(id))
		if !e.Valid() {
			continue
		}
		if v, ok := s.Get(id).(*T); ok {
			fn(e, v)
		}
	}
}

// ForEach2 visits every live entity carrying both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(e Entity, a *A, b *B)) {
	if w == nil || fn == nil {
		return
	}
	sa := w.peekStore(ka.ID())
	sb := w.peekStore(kb.ID())
	ids := append([]int(nil), sa.Entities()...)
	for _, id := range ids {
		e := w.entities.handle(entityID(id))
		if !e.Valid() || !sb.Has(id) {
			continue
		}
		a, okA := sa.Get(id).(*A)
		b, okB := sb.Get(id).(*B)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

// ForEach4 visits every live entity carrying all four kinds.
func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(e Entity, a *A, b *B, c *C, d *D)) {
	if w == nil || fn == nil {
		return
	}
	sa := w.peekStore(ka.ID())
	sb := w.peekStore(kb.ID())
	sc := w.peekStore(kc.ID())
	sd := w.peekStore(kd.ID())
	ids := append([]int(nil), sa.Entities()...)
	for _, id := range ids {
		e := w.entities.handle(entityID(id))
		if !e.Valid() || !sb.Has(id) || !sc.Has(id) || !sd.Has(id) {
			continue
		}
		a, okA := sa.Get(id).(*A)
		b, okB := sb.Get(id).(*B)
		c, okC := sc.Get(id).(*C)
		d, okD := sd.Get(id).(*D)
		if okA && okB && okC && okD {
			fn(e, a, b, c, d)
		}
	}
}

// ForEach3 visits every live entity carrying all three kinds.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(e Entity, a *A, b *B, c *C)) {
	if w == nil || fn == nil {
		return
	}
	sa := w.peekStore(ka.ID())
	sb := w.peekStore(kb.ID())
	sc := w.peekStore(kc.ID())
	ids := append([]int(nil), sa.Entities()...)
	for _, id := range ids {
		e := w.entities.handle(entityID(id))
		if !e.Valid() || !sb.Has(id) || !sc.Has(id) {
			continue
		}
		a, okA := sa.Get(id).(*A)
		b, okB := sb.Get(id).(*B)
		c, okC := sc.Get(id).(*C)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}
