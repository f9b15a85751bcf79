package component

// Gate opens while the player stands inside its sensor.
type Gate struct {
	OpenClip  string
	CloseClip string
}

// GateRuntime tracks the edge state between ticks.
type GateRuntime struct {
	Open         bool
	PlayerInside bool
	Pending      bool
}

var GateComponent = NewComponent[Gate]()
var GateRuntimeComponent = NewComponent[GateRuntime]()
