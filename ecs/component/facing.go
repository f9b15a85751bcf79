package component

import "github.com/milk9111/rustyfarm/common"

// Facing is the direction an entity looks and whether it moved this tick.
// Directional clips read it to pick their row.
type Facing struct {
	Dir    common.Direction
	Moving bool
}

var FacingComponent = NewComponent[Facing]()
