package prefabs

import (
	"errors"
	"image/color"
	"testing"

	"github.com/milk9111/rustyfarm/common"
	"github.com/milk9111/rustyfarm/ecs/animation"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedClipSets(t *testing.T) {
	spec, err := LoadClipsSpec()
	if err != nil {
		t.Fatalf("load clips: %v", err)
	}

	cases := []struct {
		set   string
		names []string
	}{
		{"player", []string{"player_harvesting", "player_running", "player_walking"}},
		{"gate", []string{"gate_closing", "gate_opening"}},
	}

	for _, c := range cases {
		t.Run(c.set, func(t *testing.T) {
			clips, err := spec.Set(c.set)
			if err != nil {
				t.Fatalf("set %s: %v", c.set, err)
			}
			if len(clips) != len(c.names) {
				t.Fatalf("expected %d clips, got %d", len(c.names), len(clips))
			}
			for i, n := range c.names {
				if clips[i].Name != n {
					t.Fatalf("clip %d: expected %s, got %s", i, n, clips[i].Name)
				}
			}
		})
	}
}

func TestHarvestClipFromYAML(t *testing.T) {
	spec, err := LoadClipsSpec()
	if err != nil {
		t.Fatal(err)
	}
	clips, err := spec.Set("player")
	if err != nil {
		t.Fatal(err)
	}
	var harvest *animation.Clip
	for _, c := range clips {
		if c.Name == "player_harvesting" {
			harvest = c.Clip
		}
	}
	if harvest == nil {
		t.Fatalf("player_harvesting missing")
	}
	if !harvest.Locked || harvest.Loop || harvest.Repeat != 1 {
		t.Fatalf("unexpected harvest flags %+v", harvest)
	}
	if harvest.Kind != animation.KindTimed || harvest.Rows[common.Up] != 3 || harvest.Rows[common.Down] != 0 {
		t.Fatalf("unexpected harvest rows %+v", harvest.Rows)
	}
	if d := harvest.Duration(); d < 1.025 || d > 1.027 {
		t.Fatalf("expected ~1.026s, got %f", d)
	}
}

func TestClipSpecErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"timing_mismatch", "sheet: s\ngrid: {cols: 4, rows: 1}\nframes: [0, 1]\ndurations: [0.1]\n"},
		{"bad_kind", "kind: spin\nsheet: s\ngrid: {cols: 4, rows: 1}\nframes: [0]\nduration: 1\n"},
		{"bad_direction", "sheet: s\ngrid: {cols: 4, rows: 4}\nframes: [0]\nduration: 1\ndirections: {north: 1}\n"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var spec ClipSpec
			if err := yaml.Unmarshal([]byte(c.src), &spec); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if _, err := spec.Clip(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	var spec ClipSpec
	_ = yaml.Unmarshal([]byte(cases[0].src), &spec)
	if _, err := spec.Clip(); !errors.Is(err, animation.ErrInvalidClip) {
		t.Fatalf("timing mismatch should wrap ErrInvalidClip, got %v", err)
	}

	clips := &ClipsSpec{}
	if _, err := clips.Set("missing"); err == nil {
		t.Fatalf("expected error for missing set")
	}
}

func TestEmbeddedPrefabs(t *testing.T) {
	player, err := LoadPlayerSpec()
	if err != nil {
		t.Fatal(err)
	}
	if player.RunSpeed <= player.WalkSpeed {
		t.Fatalf("run speed %f should exceed walk speed %f", player.RunSpeed, player.WalkSpeed)
	}
	if player.Facing != common.Down {
		t.Fatalf("expected down facing, got %s", player.Facing)
	}

	crops, err := LoadCropsSpec()
	if err != nil {
		t.Fatal(err)
	}
	if crops.Stages != 5 || crops.KillChance != 0.3 {
		t.Fatalf("unexpected crops spec %+v", crops)
	}
	for name, ct := range crops.Types {
		if ct.MaxDuration < ct.MinDuration {
			t.Fatalf("%s: max duration below min", name)
		}
	}

	atlases, err := LoadAtlasesSpec()
	if err != nil {
		t.Fatal(err)
	}
	if len(atlases.Sheets) == 0 {
		t.Fatalf("expected sheets")
	}

	if _, err := LoadGateSpec(); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWorldSpec(); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScript("crop_rules"); err != nil {
		t.Fatalf("load script: %v", err)
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		src     string
		want    color.NRGBA
		wantErr bool
	}{
		{`"#d9a066"`, color.NRGBA{R: 0xd9, G: 0xa0, B: 0x66, A: 0xff}, false},
		{`"11223380"`, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}, false},
		{`"#123"`, color.NRGBA{}, true},
		{`"#zzzzzz"`, color.NRGBA{}, true},
	}

	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.src), &got)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.Color != c.want {
				t.Fatalf("got %v, want %v", got.Color, c.want)
			}
		})
	}
}

func TestCleanPaths(t *testing.T) {
	cases := []struct {
		in, prefab, script string
	}{
		{"player", "player.yaml", "scripts/player.tengo"},
		{"prefabs/gate.yaml", "gate.yaml", "scripts/gate.yaml"},
		{"scripts/crop_rules.tengo", "scripts/crop_rules.tengo", "scripts/crop_rules.tengo"},
	}
	for _, c := range cases {
		if got := cleanPrefabPath(c.in); got != c.prefab {
			t.Fatalf("cleanPrefabPath(%q) = %q, want %q", c.in, got, c.prefab)
		}
		if got := cleanScriptPath(c.in); got != c.script {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", c.in, got, c.script)
		}
	}
}

func TestLoadBundle(t *testing.T) {
	b, err := LoadBundle()
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	sheet, ok := b.Sheet(b.Crops.Sheet)
	if !ok {
		t.Fatalf("expected crops sheet")
	}
	if sheet.Cols != b.Crops.Stages {
		t.Fatalf("expected one column per stage, got %d cols for %d stages", sheet.Cols, b.Crops.Stages)
	}
	if _, ok := b.Sheet("missing"); ok {
		t.Fatalf("expected unknown sheet lookup to fail")
	}
}
