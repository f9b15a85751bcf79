package assets

import (
	"testing"

	"github.com/milk9111/rustyfarm/prefabs"
)

func TestEmbeddedSheetsMatchAtlases(t *testing.T) {
	spec, err := prefabs.LoadAtlasesSpec()
	if err != nil {
		t.Fatalf("load atlases: %v", err)
	}
	for _, s := range spec.Sheets {
		t.Run(s.Name, func(t *testing.T) {
			img, err := SheetImage(s)
			if err != nil {
				t.Fatalf("sheet image: %v", err)
			}
			b := img.Bounds()
			if b.Dx() != s.Cols*s.CellW || b.Dy() != s.Rows*s.CellH {
				t.Fatalf("expected %dx%d, got %dx%d", s.Cols*s.CellW, s.Rows*s.CellH, b.Dx(), b.Dy())
			}
		})
	}
}

func TestPlaceholderSize(t *testing.T) {
	cases := []prefabs.SheetSpec{
		{Name: "a", Cols: 3, Rows: 2, CellW: 8, CellH: 4},
		{Name: "b", Cols: 1, Rows: 1, CellW: 16, CellH: 16, Color: &prefabs.YAMLColor{}},
	}
	for _, tc := range cases {
		b := Placeholder(tc).Bounds()
		if b.Dx() != tc.Cols*tc.CellW || b.Dy() != tc.Rows*tc.CellH {
			t.Fatalf("%s: expected %dx%d, got %dx%d", tc.Name, tc.Cols*tc.CellW, tc.Rows*tc.CellH, b.Dx(), b.Dy())
		}
	}
}

func TestMissingImageFallsBack(t *testing.T) {
	img, err := SheetImage(prefabs.SheetSpec{Name: "x", Image: "missing.png", Cols: 2, Rows: 2, CellW: 4, CellH: 4})
	if err != nil {
		t.Fatalf("expected placeholder, got %v", err)
	}
	if img.Bounds().Dx() != 8 {
		t.Fatalf("expected placeholder width 8, got %d", img.Bounds().Dx())
	}
}

func TestCleanAssetPath(t *testing.T) {
	cases := map[string]string{
		"":                  "",
		"player.png":        "player.png",
		"assets/gate.png":   "gate.png",
		"/tmp/assets/a.png": "a.png",
	}
	for in, want := range cases {
		if got := cleanAssetPath(in); got != want {
			t.Fatalf("cleanAssetPath(%q) = %q, want %q", in, got, want)
		}
	}
}
