package system

import (
	"testing"

	"github.com/milk9111/spacewalk/ecs"
	"github.com/milk9111/spacewalk/ecs/component"
)

func newInputEntity(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestApplyKeyState(t *testing.T) {
	t.Run("movement_only_drives_active_crew", func(t *testing.T) {
		w := ecs.NewWorld()
		fs := NewFocusSystem()

		active := newInputEntity(t, w)
		other := newInputEntity(t, w)

		// Stale state on the bystander proves the zeroing, not just the
		// absence of a write.
		stale, _ := ecs.Get(w, other, component.InputComponent.Kind())
		stale.MoveX = 1
		stale.BoardPressed = true

		focus, _ := fs.Focus(w)
		focus.ActiveCrew = uint64(active)

		applyKeyState(w, keyState{moveX: 1, moveY: -1, boardPressed: true, grabPressed: true})

		got, _ := ecs.Get(w, active, component.InputComponent.Kind())
		if got.MoveX != 1 || got.MoveY != -1 || !got.BoardPressed || !got.GrabPressed {
			t.Fatalf("active crew should receive the frame, got %+v", got)
		}
		bystander, _ := ecs.Get(w, other, component.InputComponent.Kind())
		if bystander.MoveX != 0 || bystander.MoveY != 0 || bystander.BoardPressed || bystander.GrabPressed {
			t.Fatalf("non-active crew must get a zeroed frame, got %+v", bystander)
		}
	})

	t.Run("view_edges_are_shared", func(t *testing.T) {
		w := ecs.NewWorld()
		fs := NewFocusSystem()

		active := newInputEntity(t, w)
		other := newInputEntity(t, w)
		focus, _ := fs.Focus(w)
		focus.ActiveCrew = uint64(active)

		applyKeyState(w, keyState{cycleForward: true, overviewToggle: true})

		for _, e := range []ecs.Entity{active, other} {
			input, _ := ecs.Get(w, e, component.InputComponent.Kind())
			if !input.CycleForwardEdge || !input.OverviewToggleEdge {
				t.Fatalf("view edges should reach every input, entity %v got %+v", e, input)
			}
		}
	})

	t.Run("no_active_crew_moves_no_one", func(t *testing.T) {
		w := ecs.NewWorld()
		fs := NewFocusSystem()
		fs.Focus(w)

		a := newInputEntity(t, w)
		b := newInputEntity(t, w)

		applyKeyState(w, keyState{moveX: 1, boardPressed: true, cycleBackward: true})

		for _, e := range []ecs.Entity{a, b} {
			input, _ := ecs.Get(w, e, component.InputComponent.Kind())
			if input.MoveX != 0 || input.BoardPressed {
				t.Fatalf("movement must not fan out without an active crew, entity %v got %+v", e, input)
			}
			if !input.CycleBackwardEdge {
				t.Fatal("cycling should still work without an active crew")
			}
		}
	})

	t.Run("text_focus_swallows_the_frame", func(t *testing.T) {
		w := ecs.NewWorld()
		fs := NewFocusSystem()

		active := newInputEntity(t, w)
		focus, _ := fs.Focus(w)
		focus.ActiveCrew = uint64(active)
		focus.TextInputFocused = true

		applyKeyState(w, keyState{moveX: 1, boardPressed: true, overviewToggle: true})

		input, _ := ecs.Get(w, active, component.InputComponent.Kind())
		if input.MoveX != 0 || input.BoardPressed || input.OverviewToggleEdge {
			t.Fatalf("typing must not leak into the simulation, got %+v", input)
		}
	})
}
