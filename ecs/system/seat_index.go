package system

import (
	"github.com/milk9111/spacewalk/common"
	"github.com/milk9111/spacewalk/ecs"
	"github.com/milk9111/spacewalk/ecs/component"
)

// seatSnapshot captures the known seat set into an intention's private
// cache. The cache is per-intention rather than shared so one crew
// member's stale view can never race another's.
func seatSnapshot(w *ecs.World) []uint64 {
	seats := w.Query(component.SeatComponent.Kind(), component.TransformComponent.Kind())
	out := make([]uint64, 0, len(seats))
	for _, e := range seats {
		out = append(out, uint64(e))
	}
	return out
}

// nearestOpenSeat returns the cached seat with no occupant within
// maxDistSq of the origin, minimizing squared distance. Ties keep the
// first-encountered candidate; the cache order is never re-sorted.
func nearestOpenSeat(w *ecs.World, it *component.Intention, x, y, maxDistSq float64) ecs.Entity {
	if w == nil || it == nil {
		return 0
	}
	if !it.SeatCacheValid {
		it.SeatCache = seatSnapshot(w)
		it.SeatCacheValid = true
	}

	var best ecs.Entity
	bestD := 0.0
	for _, ref := range it.SeatCache {
		e := ecs.Entity(ref)
		seat, ok := ecs.Get(w, e, component.SeatComponent.Kind())
		if !ok || !seat.Open() {
			continue
		}
		tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		d := common.DistSq(x, y, tr.X, tr.Y)
		if d > maxDistSq {
			continue
		}
		if !best.Valid() || d < bestD {
			best = e
			bestD = d
		}
	}
	return best
}
