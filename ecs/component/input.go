package component

// Input stores per-tick input state for the locally controlled crew member.
// Edge flags are true only on the tick the key went down.
type Input struct {
	MoveX float64
	MoveY float64

	BoardPressed       bool
	GrabPressed        bool
	CycleForwardEdge   bool
	CycleBackwardEdge  bool
	OverviewToggleEdge bool
}

var InputComponent = NewComponent[Input]()
