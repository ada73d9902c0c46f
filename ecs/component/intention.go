package component

// Intention is the per-crew record of a pending board/grab request and its
// retry state. At most one lives per crew entity; the intention system
// creates it on first toggle and prunes it once completed.
type Intention struct {
	WantsBoard bool
	WantsGrab  bool

	// LastAirlock is the airlock entity seen on the previous tick
	// (0 = none). A change, including to/from none, is the edge at which
	// a board attempt is made.
	LastAirlock uint64

	// SeatCache is the lazily captured seat snapshot used for nearest-seat
	// queries during one boarding episode. Invalidated every time
	// WantsBoard flips false -> true.
	SeatCache      []uint64
	SeatCacheValid bool

	// Snapshot is the camera state captured just before a transfer,
	// restored once the transfer settles. Overwritten on each capture.
	Snapshot *CameraState
}

// Completed reports whether the intention no longer needs processing.
func (i *Intention) Completed() bool {
	return i == nil || (!i.WantsBoard && !i.WantsGrab)
}

var IntentionComponent = NewComponent[Intention]()
