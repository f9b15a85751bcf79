package component

// RenderLayer is used to sort draw order deterministically. Entities on the
// same layer draw by Transform.Z, then Y.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
