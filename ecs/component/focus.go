package component

// SimFocus is the singleton "active pointer" of the simulation: which
// vessel owns the view and which crew member local input drives.
type SimFocus struct {
	ActiveVessel uint64
	ActiveCrew   uint64
	// Overview is true while the detached map/overview mode is up; intent
	// toggles are refused while set.
	Overview bool
	// TextInputFocused is true while a HUD text field holds keyboard
	// focus; intent toggles are refused while set.
	TextInputFocused bool
}

var SimFocusComponent = NewComponent[SimFocus]()

// PendingFocusSwitch is the single deferred-action slot: a focus switch
// scheduled for the start of the next tick. A later deferral overwrites an
// unconsumed earlier one.
type PendingFocusSwitch struct {
	Vessel uint64
}

var PendingFocusSwitchComponent = NewComponent[PendingFocusSwitch]()
