package component

// Airlock is a crewed entry point on a vessel.
type Airlock struct {
	Vessel   uint64
	Crew     int
	Capacity int
}

// Occupiable reports whether another crew member fits through this airlock.
func (a *Airlock) Occupiable() bool {
	return a != nil && a.Crew < a.Capacity
}

var AirlockComponent = NewComponent[Airlock]()
