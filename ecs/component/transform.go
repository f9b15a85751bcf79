package component

// Transform is the world position of an entity's feet. Z orders drawing
// within a render layer.
type Transform struct {
	X float64
	Y float64
	Z float64
}

var TransformComponent = NewComponent[Transform]()
