package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spacewalk/ecs"
	"github.com/milk9111/spacewalk/ecs/component"
)

func attachBody(t *testing.T, w *ecs.World, e ecs.Entity) *cp.Body {
	t.Helper()
	body := cp.NewBody(1, cp.INFINITY)
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		pb = &component.PhysicsBody{Radius: 10, Mass: 1}
		if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), pb); err != nil {
			t.Fatal(err)
		}
	}
	pb.Body = body
	return body
}

func TestBeginClimb(t *testing.T) {
	w := ecs.NewWorld()
	crew := newCrew(t, w, "Val")

	if !BeginClimb(w, crew) {
		t.Fatal("expected climb scheduled")
	}
	machine, _ := ecs.Get(w, crew, component.CrewStateMachineComponent.Kind())
	if machine.Pending != crewClimbState {
		t.Fatal("pending state should be the climb state")
	}

	if BeginClimb(w, crew) {
		t.Fatal("a second schedule while one is pending must be refused")
	}

	bare := ecs.CreateEntity(w)
	if BeginClimb(w, bare) {
		t.Fatal("an entity without a state machine cannot climb")
	}
}

func TestCrewStateSystem(t *testing.T) {
	t.Run("defaults_to_walking", func(t *testing.T) {
		w := ecs.NewWorld()
		crew := newCrew(t, w, "Val")
		body := attachBody(t, w, crew)
		body.SetVelocityVector(cp.Vector{X: 0, Y: 5})

		input := &component.Input{MoveX: 1}
		if err := ecs.Add(w, crew, component.InputComponent.Kind(), input); err != nil {
			t.Fatal(err)
		}

		NewCrewStateSystem().Update(w)

		machine, _ := ecs.Get(w, crew, component.CrewStateMachineComponent.Kind())
		if machine.State != crewWalkState {
			t.Fatal("expected the walking state")
		}
		// Walking drives x and preserves the fall.
		v := body.Velocity()
		if v.X != 2 || v.Y != 5 {
			t.Fatalf("unexpected velocity (%v, %v)", v.X, v.Y)
		}
	})

	t.Run("climb_zeroes_velocity_and_drives_vertical", func(t *testing.T) {
		w := ecs.NewWorld()
		crew := newCrew(t, w, "Val")
		body := attachBody(t, w, crew)
		body.SetVelocityVector(cp.Vector{X: 3, Y: 3})

		input := &component.Input{MoveY: -1}
		if err := ecs.Add(w, crew, component.InputComponent.Kind(), input); err != nil {
			t.Fatal(err)
		}

		status, _ := ecs.Get(w, crew, component.CrewStatusComponent.Kind())
		status.ClimbTriggers = 1
		if !BeginClimb(w, crew) {
			t.Fatal("climb should schedule")
		}

		NewCrewStateSystem().Update(w)

		if !status.Climbing {
			t.Fatal("climb entry should set Climbing")
		}
		v := body.Velocity()
		if v.X != 0 || v.Y != -1 {
			t.Fatalf("unexpected velocity (%v, %v)", v.X, v.Y)
		}
	})

	t.Run("drifting_off_ladder_returns_to_walking", func(t *testing.T) {
		w := ecs.NewWorld()
		crew := newCrew(t, w, "Val")
		attachBody(t, w, crew)
		if err := ecs.Add(w, crew, component.InputComponent.Kind(), &component.Input{}); err != nil {
			t.Fatal(err)
		}

		status, _ := ecs.Get(w, crew, component.CrewStatusComponent.Kind())
		status.ClimbTriggers = 1
		BeginClimb(w, crew)

		sys := NewCrewStateSystem()
		sys.Update(w) // enters climb

		status.ClimbTriggers = 0
		sys.Update(w) // climb notices, schedules walk
		sys.Update(w) // swap applies

		machine, _ := ecs.Get(w, crew, component.CrewStateMachineComponent.Kind())
		if machine.State != crewWalkState {
			t.Fatalf("expected walking after leaving the ladder, got %v", machine.State.Name())
		}
		if status.Climbing {
			t.Fatal("leaving the climb state should clear Climbing")
		}
	})

	t.Run("skips_crew_aboard", func(t *testing.T) {
		w := ecs.NewWorld()
		crew := newCrew(t, w, "Val")
		attachBody(t, w, crew)

		status, _ := ecs.Get(w, crew, component.CrewStatusComponent.Kind())
		status.Aboard = 42

		NewCrewStateSystem().Update(w)

		machine, _ := ecs.Get(w, crew, component.CrewStateMachineComponent.Kind())
		if machine.State != nil {
			t.Fatal("crew aboard a vessel must not run state machines")
		}
	})
}
