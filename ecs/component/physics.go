package component

import "github.com/jakecoffman/cp"

// PhysicsBody describes the cp body/shape the physics system builds for an
// entity. Body and Shape are filled in by the physics system.
type PhysicsBody struct {
	Width      float64
	Height     float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
	Sensor     bool
	OffsetX    float64
	OffsetY    float64

	Body  *cp.Body
	Shape *cp.Shape
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
