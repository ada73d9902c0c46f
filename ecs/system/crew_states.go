package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spacewalk/ecs"
	"github.com/milk9111/spacewalk/ecs/component"
)

// Shared state singletons. States hold no per-crew data; everything flows
// through the context.
var (
	crewWalkState  component.CrewState = &walkingState{}
	crewClimbState component.CrewState = &climbingState{}
)

type walkingState struct{}

func (s *walkingState) Name() string { return "walking" }

func (s *walkingState) Enter(ctx *component.CrewStateContext) {
	if ctx.Status != nil {
		ctx.Status.Climbing = false
	}
}

func (s *walkingState) Exit(ctx *component.CrewStateContext) {}

func (s *walkingState) HandleInput(ctx *component.CrewStateContext) {
	if ctx.Input == nil || ctx.SetVelocity == nil || ctx.GetVelocity == nil {
		return
	}
	_, vy := ctx.GetVelocity()
	speed := 0.0
	if ctx.Crew != nil {
		speed = ctx.Crew.MoveSpeed
	}
	ctx.SetVelocity(ctx.Input.MoveX*speed, vy)
}

func (s *walkingState) Update(ctx *component.CrewStateContext) {}

type climbingState struct{}

func (s *climbingState) Name() string { return "climbing" }

func (s *climbingState) Enter(ctx *component.CrewStateContext) {
	if ctx.Status != nil {
		ctx.Status.Climbing = true
	}
	if ctx.SetVelocity != nil {
		ctx.SetVelocity(0, 0)
	}
}

func (s *climbingState) Exit(ctx *component.CrewStateContext) {
	if ctx.Status != nil {
		ctx.Status.Climbing = false
	}
}

func (s *climbingState) HandleInput(ctx *component.CrewStateContext) {
	if ctx.Input == nil || ctx.SetVelocity == nil {
		return
	}
	speed := 0.0
	if ctx.Crew != nil {
		speed = ctx.Crew.ClimbSpeed
	}
	ctx.SetVelocity(0, ctx.Input.MoveY*speed)
}

func (s *climbingState) Update(ctx *component.CrewStateContext) {
	// Drifting off the ladder ends the climb.
	if ctx.NearClimbable != nil && !ctx.NearClimbable() && ctx.ChangeState != nil {
		ctx.ChangeState(crewWalkState)
	}
}

// BeginClimb schedules the climb state for a crew member. Returns false if
// the crew member has no state machine or is already climbing.
func BeginClimb(w *ecs.World, crew ecs.Entity) bool {
	machine, ok := ecs.Get(w, crew, component.CrewStateMachineComponent.Kind())
	if !ok {
		return false
	}
	if machine.State == crewClimbState || machine.Pending == crewClimbState {
		return false
	}
	machine.Pending = crewClimbState
	return true
}

// CrewStateSystem drives the per-crew state machines: pending swaps first,
// then input, then update. Crew aboard a vessel have no body and are
// skipped.
type CrewStateSystem struct{}

func NewCrewStateSystem() *CrewStateSystem {
	return &CrewStateSystem{}
}

func (cs *CrewStateSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.CrewStateMachineComponent.Kind(), component.CrewStatusComponent.Kind(),
		func(e ecs.Entity, machine *component.CrewStateMachine, status *component.CrewStatus) {
			if status.Aboard != 0 {
				return
			}
			body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
			if !ok || body.Body == nil {
				return
			}

			crew, _ := ecs.Get(w, e, component.CrewComponent.Kind())
			input, _ := ecs.Get(w, e, component.InputComponent.Kind())

			ctx := &component.CrewStateContext{
				Input:  input,
				Crew:   crew,
				Status: status,
				GetVelocity: func() (float64, float64) {
					v := body.Body.Velocity()
					return v.X, v.Y
				},
				SetVelocity: func(x, y float64) {
					body.Body.SetVelocityVector(cp.Vector{X: x, Y: y})
				},
				ChangeState: func(next component.CrewState) {
					machine.Pending = next
				},
				NearClimbable: func() bool {
					return status.ClimbTriggers > 0
				},
			}

			if machine.State == nil && machine.Pending == nil {
				machine.Pending = crewWalkState
			}
			if machine.Pending != nil {
				if machine.State != nil {
					machine.State.Exit(ctx)
				}
				machine.State = machine.Pending
				machine.Pending = nil
				machine.State.Enter(ctx)
			}

			machine.State.HandleInput(ctx)
			machine.State.Update(ctx)
		})
}
