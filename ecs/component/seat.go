package component

// Seat is a single-capacity boarding point on a vessel. Occupant == 0 means
// the seat is open.
type Seat struct {
	Vessel   uint64
	Occupant uint64
}

func (s *Seat) Open() bool {
	return s != nil && s.Occupant == 0
}

var SeatComponent = NewComponent[Seat]()
