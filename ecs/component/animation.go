package component

// Animation names the prefab clip set registered for an entity while the game
// is in the animation loading state.
type Animation struct {
	Set  string
	Idle string
}

var AnimationComponent = NewComponent[Animation]()
