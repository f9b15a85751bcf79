package system

import (
	"fmt"
	"math/rand/v2"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/rustyfarm/prefabs"
)

// CropRules evaluates the crop rule script. The script sees phase, roll,
// min_duration, max_duration and kill_chance and sets duration and killed.
type CropRules struct {
	compiled *tengo.Compiled
	rng      *rand.Rand
}

// LoadCropRules compiles prefabs/scripts/<name>.tengo.
func LoadCropRules(name string, seed uint64) (*CropRules, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}
	return NewCropRules(src, seed)
}

func NewCropRules(src []byte, seed uint64) (*CropRules, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math"))
	for name, v := range map[string]any{
		"phase":        "",
		"roll":         0.0,
		"min_duration": 0.0,
		"max_duration": 0.0,
		"kill_chance":  0.0,
	} {
		if err := script.Add(name, v); err != nil {
			return nil, fmt.Errorf("crop rules: add %s: %w", name, err)
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("crop rules: compile: %w", err)
	}
	return &CropRules{
		compiled: compiled,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

func (r *CropRules) run(phase string, vars map[string]float64) error {
	if err := r.compiled.Set("phase", phase); err != nil {
		return err
	}
	if err := r.compiled.Set("roll", r.rng.Float64()); err != nil {
		return err
	}
	for name, v := range vars {
		if err := r.compiled.Set(name, v); err != nil {
			return err
		}
	}
	if err := r.compiled.Run(); err != nil {
		return fmt.Errorf("crop rules: %s: %w", phase, err)
	}
	return nil
}

// PlantDuration rolls the per-stage growth time of a new crop.
func (r *CropRules) PlantDuration(minDuration, maxDuration float64) (float64, error) {
	err := r.run("plant", map[string]float64{
		"min_duration": minDuration,
		"max_duration": maxDuration,
	})
	if err != nil {
		return 0, err
	}
	return r.compiled.Get("duration").Float(), nil
}

// Trample rolls whether a crop dies when stepped on.
func (r *CropRules) Trample(killChance float64) (bool, error) {
	if err := r.run("trample", map[string]float64{"kill_chance": killChance}); err != nil {
		return false, err
	}
	return r.compiled.Get("killed").Bool(), nil
}
