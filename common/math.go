package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TicksPerSecond is the fixed simulation rate the ebiten driver runs at.
	TicksPerSecond = 60
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// DistSq returns the squared euclidean distance between two points.
func DistSq(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}
