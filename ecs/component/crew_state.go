package component

// CrewState defines the interface for crew state machine states.
// Each state owns its own enter/exit, input handling, and update logic.
type CrewState interface {
	Name() string
	Enter(ctx *CrewStateContext)
	Exit(ctx *CrewStateContext)
	HandleInput(ctx *CrewStateContext)
	Update(ctx *CrewStateContext)
}

// CrewStateContext provides controlled access to input and physics for a
// state. It intentionally uses callbacks to avoid tight coupling to the ECS
// package.
type CrewStateContext struct {
	Input         *Input
	Crew          *Crew
	Status        *CrewStatus
	GetVelocity   func() (x, y float64)
	SetVelocity   func(x, y float64)
	ChangeState   func(state CrewState)
	NearClimbable func() bool
}

// CrewStateMachine stores the active and pending states for a crew member.
type CrewStateMachine struct {
	State   CrewState
	Pending CrewState
}

var CrewStateMachineComponent = NewComponent[CrewStateMachine]()
