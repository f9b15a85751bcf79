package component

// LevelBounds stores the world-space bounds of the current level.
type LevelBounds struct {
	Width  float64
	Height float64
}

// Clamp keeps a box of size w x h anchored at its bottom center inside the
// bounds.
func (b LevelBounds) Clamp(x, y, w, h float64) (float64, float64) {
	if b.Width <= 0 || b.Height <= 0 {
		return x, y
	}
	x = min(max(x, w/2), b.Width-w/2)
	y = min(max(y, h), b.Height)
	return x, y
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
