package component

// Perspective lets an entity pass behind taller bodies. Height is the drawn
// height above the feet; Depth is the footprint that blocks.
type Perspective struct {
	Height float64
	Depth  float64
}

var PerspectiveComponent = NewComponent[Perspective]()
