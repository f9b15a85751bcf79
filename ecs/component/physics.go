package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration. The
// box is anchored at the bottom center of the transform.
type PhysicsBody struct {
	Body    *cp.Body
	Shape   *cp.Shape
	Sensor  *cp.Shape
	Width   float64
	Height  float64
	OffsetY float64
	// SensorPad grows the sensor shape on every side. Zero means no sensor.
	SensorPad float64
	Solid     bool
	Static    bool
	Disabled  bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
