package component

// Sprite selects one cell of a named sheet laid out as Cols x Rows. The
// animation driver writes Sheet, Index and FlipX; prefabs provide the initial
// values for static sprites.
type Sprite struct {
	Sheet   string
	Cols    int
	Rows    int
	Index   int
	FlipX   bool
	OriginX float64
	OriginY float64
	Hidden  bool
}

var SpriteComponent = NewComponent[Sprite]()
