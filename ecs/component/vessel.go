package component

// Vessel is a vehicle that can hold crew and may become the focused entity.
type Vessel struct {
	Name string
	// Controllable vessels are eligible focus-switch targets.
	Controllable bool
	// Packed vessels are on rails and not physically simulated; transfers
	// into them are not attempted.
	Packed bool
}

var VesselComponent = NewComponent[Vessel]()
