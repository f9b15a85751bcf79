package common

// Logical screen size; the window scales it.
const (
	BaseWidth  = 640
	BaseHeight = 360
)
