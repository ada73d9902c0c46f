package component

// Transform is an entity's world-space placement. Child entities built from
// a vessel prefab (seats, airlocks, ladders) get their own Transform at the
// parent position plus the authored offset.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
