package component

import "fmt"

type CropType int

const (
	CropPotato CropType = iota
	CropCarrot
	CropCorn
	CropCabbage
	CropDead
)

func (c CropType) String() string {
	switch c {
	case CropPotato:
		return "potato"
	case CropCarrot:
		return "carrot"
	case CropCorn:
		return "corn"
	case CropCabbage:
		return "cabbage"
	case CropDead:
		return "dead"
	default:
		return fmt.Sprintf("crop(%d)", int(c))
	}
}

func ParseCropType(s string) (CropType, error) {
	for c := CropPotato; c <= CropDead; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return CropDead, fmt.Errorf("component: unknown crop type %q", s)
}

// Crop grows through Stages at a fixed Duration per stage. Duration is rolled
// once when the crop is planted.
type Crop struct {
	Type        CropType
	Stage       int
	Stages      int
	Elapsed     float64
	Duration    float64
	Highlighted bool
	Occupied    bool
}

// Ripe reports whether the crop reached its last stage.
func (c *Crop) Ripe() bool {
	return c.Type != CropDead && c.Stage >= c.Stages-1
}

var CropComponent = NewComponent[Crop]()
