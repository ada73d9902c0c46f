package ecs

import (
	"testing"

	"github.com/milk9111/spacewalk/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if len(Entities(w)) != c.create-1 {
					t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
				}
			}
		})
	}
}

func TestEntityHandleReuse(t *testing.T) {
	w := NewWorld()
	first := CreateEntity(w)
	if !DestroyEntity(w, first) {
		t.Fatal("destroy failed")
	}
	second := CreateEntity(w)
	if first == second {
		t.Fatalf("recycled id must carry a new generation: %v == %v", first, second)
	}
	if IsAlive(w, first) {
		t.Fatal("stale handle should be dead")
	}
	if !IsAlive(w, second) {
		t.Fatal("new handle should be alive")
	}
}

func TestComponentAddGetRemove(t *testing.T) {
	w := NewWorld()

	hInt := component.NewComponent[int]()
	hStr := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	if err := Add(w, e1, hInt.Kind(), intPtr(10)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if v, ok := Get(w, e1, hInt.Kind()); !ok || *v != 10 {
		t.Fatalf("expected 10, got %v ok=%v", v, ok)
	}

	if err := Add(w, e1, hStr.Kind(), stringPtr("a")); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := Add(w, e2, hStr.Kind(), stringPtr("b")); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !Has(w, e1, hStr.Kind()) || !Has(w, e2, hStr.Kind()) {
		t.Fatal("expected both entities to have string component")
	}

	if !Remove(w, e1, hInt.Kind()) {
		t.Fatal("remove should report presence")
	}
	if Has(w, e1, hInt.Kind()) {
		t.Fatal("component should be gone after remove")
	}

	if err := Add(w, e1, hInt.Kind(), nil); err != component.ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
	dead := CreateEntity(w)
	DestroyEntity(w, dead)
	if err := Add(w, dead, hInt.Kind(), intPtr(1)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestFirstAndQuery(t *testing.T) {
	w := NewWorld()

	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()

	if _, ok := w.First(ka); ok {
		t.Fatal("First on empty store should report false")
	}
	if got := w.Query(ka, kb); got != nil {
		t.Fatalf("Query on empty stores should be nil, got %v", got)
	}

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	if err := Add(w, e1, ka, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e2, ka, intPtr(2)); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e2, kb, intPtr(3)); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e3, kb, intPtr(4)); err != nil {
		t.Fatal(err)
	}

	if got, ok := w.First(kb); !ok || (got != e2 && got != e3) {
		t.Fatalf("First(kb) = %v ok=%v", got, ok)
	}

	both := w.Query(ka, kb)
	if len(both) != 1 || both[0] != e2 {
		t.Fatalf("expected only e2 in Query(ka, kb), got %v", both)
	}

	if !DestroyEntity(w, e2) {
		t.Fatal("destroy failed")
	}
	if got := w.Query(ka, kb); len(got) != 0 {
		t.Fatalf("dead entity must not appear in Query, got %v", got)
	}
}

func TestForEachVariants(t *testing.T) {
	t.Run("single_kind", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()

		e1 := CreateEntity(w)
		CreateEntity(w)
		e3 := CreateEntity(w)

		if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		seen := map[Entity]int{}
		ForEach(w, h.Kind(), func(e Entity, v *int) { seen[e] = *v })
		if len(seen) != 2 || seen[e1] != 1 || seen[e3] != 3 {
			t.Fatalf("unexpected visit set: %v", seen)
		}
	})

	t.Run("intersection_of_three", func(t *testing.T) {
		w := NewWorld()
		e1 := CreateEntity(w)
		e2 := CreateEntity(w)
		e3 := CreateEntity(w)

		ka := component.NewComponentKind[int]()
		kb := component.NewComponentKind[int]()
		kc := component.NewComponentKind[int]()

		for _, add := range []error{
			Add(w, e1, ka, intPtr(1)),
			Add(w, e2, ka, intPtr(2)),
			Add(w, e2, kb, intPtr(3)),
			Add(w, e2, kc, intPtr(5)),
			Add(w, e3, kb, intPtr(4)),
		} {
			if add != nil {
				t.Fatal(add)
			}
		}

		var res []Entity
		ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
		if len(res) != 1 || res[0] != e2 {
			t.Fatalf("expected only e2, got %v", res)
		}
	})

	t.Run("ignores_dead_entities", func(t *testing.T) {
		w := NewWorld()
		e := CreateEntity(w)

		ka := component.NewComponentKind[int]()
		kb := component.NewComponentKind[int]()

		if err := Add(w, e, ka, intPtr(1)); err != nil {
			t.Fatal(err)
		}
		if err := Add(w, e, kb, intPtr(2)); err != nil {
			t.Fatal(err)
		}
		if !DestroyEntity(w, e) {
			t.Fatal("failed to destroy entity")
		}

		var res []Entity
		ForEach2(w, ka, kb, func(e Entity, _ *int, _ *int) { res = append(res, e) })
		if len(res) != 0 {
			t.Fatalf("expected empty result after destroy, got %v", res)
		}
	})

	t.Run("four_kinds", func(t *testing.T) {
		w := NewWorld()
		e1 := CreateEntity(w)
		e2 := CreateEntity(w)

		ka := component.NewComponentKind[int]()
		kb := component.NewComponentKind[int]()
		kc := component.NewComponentKind[int]()
		kd := component.NewComponentKind[int]()

		for _, add := range []error{
			Add(w, e1, ka, intPtr(1)),
			Add(w, e2, ka, intPtr(2)),
			Add(w, e2, kb, intPtr(3)),
			Add(w, e2, kc, intPtr(5)),
			Add(w, e2, kd, intPtr(7)),
		} {
			if add != nil {
				t.Fatal(add)
			}
		}

		var res []Entity
		ForEach4(w, ka, kb, kc, kd, func(e Entity, _ *int, _ *int, _ *int, _ *int) { res = append(res, e) })
		if len(res) != 1 || res[0] != e2 {
			t.Fatalf("expected only e2, got %v", res)
		}
	})
}
