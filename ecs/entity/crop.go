package entity

import (
	"fmt"

	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/component"
	"github.com/milk9111/rustyfarm/prefabs"
)

// Planter rolls the per-stage growth time of a new crop.
type Planter interface {
	PlantDuration(minDuration, maxDuration float64) (float64, error)
}

// NewCropAt plants a crop at stage 0. Its growth duration is rolled here and
// kept for the crop's lifetime.
func NewCropAt(w *ecs.World, bundle *prefabs.Bundle, planter Planter, id string, typ component.CropType, x, y float64) (ecs.Entity, error) {
	spec := bundle.Crops
	ts, ok := spec.Types[typ.String()]
	if !ok {
		return 0, fmt.Errorf("crop: type %s not in crops.yaml", typ)
	}

	duration := ts.MinDuration
	if planter != nil && typ != component.CropDead {
		d, err := planter.PlantDuration(ts.MinDuration, ts.MaxDuration)
		if err != nil {
			return 0, fmt.Errorf("crop %s: %w", id, err)
		}
		duration = d
	}

	b := newBuilder(w)
	add(b, component.CropComponent, &component.Crop{Type: typ, Stages: spec.Stages, Duration: duration})
	if id != "" {
		add(b, component.PersistentComponent, &component.Persistent{ID: id})
	}
	b.transform(x, y)
	b.sprite(bundle, prefabs.SpriteSpec{
		Sheet:   spec.Sheet,
		Index:   ts.Row * spec.Stages,
		OriginX: spec.Sprite.OriginX,
		OriginY: spec.Sprite.OriginY,
	})
	b.collider(spec.Collider, true)
	b.layer(spec.RenderLayer)

	e, err := b.done()
	if err != nil {
		return 0, fmt.Errorf("crop %s: %w", id, err)
	}
	return e, nil
}

// CropRows maps each crop type to its first sheet row.
func CropRows(spec *prefabs.CropsSpec) (map[component.CropType]int, error) {
	rows := make(map[component.CropType]int, len(spec.Types))
	for name, ts := range spec.Types {
		typ, err := component.ParseCropType(name)
		if err != nil {
			return nil, err
		}
		rows[typ] = ts.Row
	}
	return rows, nil
}
