package component

// TileMap is the static ground of a level, drawn beneath every entity.
type TileMap struct {
	Sheet    string
	Cols     int
	Width    int
	Height   int
	TileSize int
	Layers   [][]int
}

var TileMapComponent = NewComponent[TileMap]()
