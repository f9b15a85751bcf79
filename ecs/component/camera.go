package component

type Camera struct {
	TargetName string
	Zoom       float64
	Smoothness float64
	ViewWidth  float64
	ViewHeight float64
}

var CameraComponent = NewComponent[Camera]()
