package component

// Crew holds the tuning values for an extravehicular crew member.
type Crew struct {
	Name       string
	MoveSpeed  float64
	ClimbSpeed float64
}

var CrewComponent = NewComponent[Crew]()

// CrewStatus is the per-tick physical state other systems introspect.
// AtAirlock and Aboard are entity refs (0 = none); both are written only by
// the physics pass and the board/occupy mutators, never by readers.
type CrewStatus struct {
	// AtAirlock is the airlock entity the crew member is currently
	// positioned at, resolved by sensor overlap. 0 when not at one.
	AtAirlock uint64
	// ClimbTriggers counts ladder proximity sensors currently overlapping
	// the crew body.
	ClimbTriggers int
	// Climbing is true while the crew state machine is attached to a ladder.
	Climbing bool
	// Aboard is the vessel the crew member entered, 0 while on EVA.
	Aboard uint64
	// Seated is the seat entity occupied, 0 when none.
	Seated uint64
	// Busy is true while an unrelated animation (e.g. planting a flag) is
	// in progress; intent toggles are refused while set.
	Busy bool
}

var CrewStatusComponent = NewComponent[CrewStatus]()
