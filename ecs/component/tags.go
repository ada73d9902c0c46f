package component

type CrewTag struct{}

var CrewTagComponent = NewComponent[CrewTag]()

type VesselTag struct{}

var VesselTagComponent = NewComponent[VesselTag]()

type SeatTag struct{}

var SeatTagComponent = NewComponent[SeatTag]()

type AirlockTag struct{}

var AirlockTagComponent = NewComponent[AirlockTag]()

type LadderTag struct{}

var LadderTagComponent = NewComponent[LadderTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()
