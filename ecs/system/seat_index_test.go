package system

import (
	"testing"

	"github.com/milk9111/spacewalk/ecs"
	"github.com/milk9111/spacewalk/ecs/component"
)

func TestNearestOpenSeat(t *testing.T) {
	t.Run("minimizes_squared_distance", func(t *testing.T) {
		w := ecs.NewWorld()
		vessel := newVessel(t, w, "Shuttle", true, false)
		far := newSeat(t, w, vessel, 10, 0)
		near := newSeat(t, w, vessel, 3, 4) // d2 = 25
		it := &component.Intention{}

		got := nearestOpenSeat(w, it, 0, 0, 100*100)
		if got != near {
			t.Fatalf("expected %v, got %v (far=%v)", near, got, far)
		}
	})

	t.Run("tie_keeps_first_encountered", func(t *testing.T) {
		w := ecs.NewWorld()
		vessel := newVessel(t, w, "Shuttle", true, false)
		first := newSeat(t, w, vessel, 5, 0)
		newSeat(t, w, vessel, -5, 0)
		it := &component.Intention{}

		if got := nearestOpenSeat(w, it, 0, 0, 100); got != first {
			t.Fatalf("tie must keep the earlier cache entry, got %v want %v", got, first)
		}
	})

	t.Run("skips_occupied_seats", func(t *testing.T) {
		w := ecs.NewWorld()
		vessel := newVessel(t, w, "Shuttle", true, false)
		taken := newSeat(t, w, vessel, 1, 0)
		open := newSeat(t, w, vessel, 2, 0)
		seat, _ := ecs.Get(w, taken, component.SeatComponent.Kind())
		seat.Occupant = 99
		it := &component.Intention{}

		if got := nearestOpenSeat(w, it, 0, 0, 100); got != open {
			t.Fatalf("expected the open seat %v, got %v", open, got)
		}
	})

	t.Run("respects_radius", func(t *testing.T) {
		w := ecs.NewWorld()
		vessel := newVessel(t, w, "Shuttle", true, false)
		newSeat(t, w, vessel, 50, 0)
		it := &component.Intention{}

		if got := nearestOpenSeat(w, it, 0, 0, 48*48); got.Valid() {
			t.Fatalf("seat beyond the radius must not match, got %v", got)
		}
	})

	t.Run("cache_is_per_intention", func(t *testing.T) {
		w := ecs.NewWorld()
		vessel := newVessel(t, w, "Shuttle", true, false)
		newSeat(t, w, vessel, 1, 0)
		it := &component.Intention{}

		if got := nearestOpenSeat(w, it, 0, 0, 100); !got.Valid() {
			t.Fatal("expected a seat on the first query")
		}
		if !it.SeatCacheValid || len(it.SeatCache) != 1 {
			t.Fatalf("cache should hold the snapshot, got valid=%v len=%d", it.SeatCacheValid, len(it.SeatCache))
		}

		// A seat added after the snapshot is invisible to this episode.
		added := newSeat(t, w, vessel, 0.5, 0)
		if got := nearestOpenSeat(w, it, 0, 0, 100); got == added {
			t.Fatal("stale cache must not see seats added after the snapshot")
		}

		// A fresh episode re-snapshots.
		it.SeatCacheValid = false
		it.SeatCache = nil
		if got := nearestOpenSeat(w, it, 0, 0, 100); got != added {
			t.Fatalf("invalidated cache should find the closer seat, got %v want %v", got, added)
		}
	})

	t.Run("ignores_destroyed_seats", func(t *testing.T) {
		w := ecs.NewWorld()
		vessel := newVessel(t, w, "Shuttle", true, false)
		gone := newSeat(t, w, vessel, 1, 0)
		keep := newSeat(t, w, vessel, 2, 0)
		it := &component.Intention{}

		// Snapshot both, then destroy one.
		nearestOpenSeat(w, it, 0, 0, 100)
		if !ecs.DestroyEntity(w, gone) {
			t.Fatal("destroy failed")
		}

		if got := nearestOpenSeat(w, it, 0, 0, 100); got != keep {
			t.Fatalf("dead cache entries must be skipped, got %v want %v", got, keep)
		}
	})
}
