package prefabs

import "fmt"

// Bundle holds every prefab the farm level is built from.
type Bundle struct {
	Player  *PlayerSpec
	Gate    *GateSpec
	Crops   *CropsSpec
	World   *WorldSpec
	Clips   *ClipsSpec
	Atlases *AtlasesSpec
}

// LoadBundle reads and checks every prefab. Clip sets referenced by the
// player and gate must exist and convert cleanly.
func LoadBundle() (*Bundle, error) {
	var (
		b   Bundle
		err error
	)
	if b.Player, err = LoadPlayerSpec(); err != nil {
		return nil, err
	}
	if b.Gate, err = LoadGateSpec(); err != nil {
		return nil, err
	}
	if b.Crops, err = LoadCropsSpec(); err != nil {
		return nil, err
	}
	if b.World, err = LoadWorldSpec(); err != nil {
		return nil, err
	}
	if b.Clips, err = LoadClipsSpec(); err != nil {
		return nil, err
	}
	if b.Atlases, err = LoadAtlasesSpec(); err != nil {
		return nil, err
	}
	for _, set := range []string{b.Player.Clips, b.Gate.Clips} {
		if _, err := b.Clips.Set(set); err != nil {
			return nil, err
		}
	}
	for _, sheet := range []string{b.Player.Sprite.Sheet, b.Gate.Sprite.Sheet, b.Crops.Sheet, b.World.Ground.Sheet, b.World.Fence.Sheet} {
		if _, ok := b.Sheet(sheet); !ok {
			return nil, fmt.Errorf("prefabs: sheet %q not in atlases.yaml", sheet)
		}
	}
	return &b, nil
}

// Sheet looks up a sheet by name.
func (b *Bundle) Sheet(name string) (SheetSpec, bool) {
	if b == nil || b.Atlases == nil {
		return SheetSpec{}, false
	}
	for _, s := range b.Atlases.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return SheetSpec{}, false
}
