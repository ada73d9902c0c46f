package component

type CameraMode int

const (
	CameraModeAuto CameraMode = iota
	CameraModeChase
	CameraModeFree
)

// Camera is the single observer viewpoint. ViewX/ViewY is the viewpoint
// position, PivotX/PivotY the point it orbits/looks at.
type Camera struct {
	Mode       CameraMode
	ViewX      float64
	ViewY      float64
	PivotX     float64
	PivotY     float64
	Smoothness float64
}

var CameraComponent = NewComponent[Camera]()

// CameraState is a copyable viewpoint snapshot taken around a focus
// transfer so the transfer is visually seamless.
type CameraState struct {
	Mode   CameraMode
	ViewX  float64
	ViewY  float64
	PivotX float64
	PivotY float64
}
