package assets

import (
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rustyfarm/prefabs"
)

type sheet struct {
	spec prefabs.SheetSpec
	img  *ebiten.Image
}

// Atlas owns every sprite sheet named in atlases.yaml.
type Atlas struct {
	sheets map[string]*sheet
}

// SheetImage returns the embedded image for a sheet, or a generated
// placeholder when the sheet has no image yet.
func SheetImage(spec prefabs.SheetSpec) (image.Image, error) {
	if spec.Image != "" {
		img, err := DecodeImage(spec.Image)
		if err == nil {
			if err := checkSheetSize(spec, img.Bounds()); err != nil {
				return nil, err
			}
			return img, nil
		}
		log.Printf("assets: %s: %v, using placeholder", spec.Image, err)
	}
	return Placeholder(spec), nil
}

func checkSheetSize(spec prefabs.SheetSpec, b image.Rectangle) error {
	if spec.CellW <= 0 || spec.CellH <= 0 {
		return nil
	}
	if b.Dx() < spec.Cols*spec.CellW || b.Dy() < spec.Rows*spec.CellH {
		return fmt.Errorf("assets: %s is %dx%d, want at least %dx%d for a %dx%d grid of %dx%d cells",
			spec.Image, b.Dx(), b.Dy(), spec.Cols*spec.CellW, spec.Rows*spec.CellH, spec.Cols, spec.Rows, spec.CellW, spec.CellH)
	}
	return nil
}

func NewAtlas(spec *prefabs.AtlasesSpec) (*Atlas, error) {
	a := &Atlas{sheets: make(map[string]*sheet, len(spec.Sheets))}
	for _, s := range spec.Sheets {
		img, err := SheetImage(s)
		if err != nil {
			return nil, err
		}
		if s.CellW <= 0 {
			s.CellW = img.Bounds().Dx() / s.Cols
		}
		if s.CellH <= 0 {
			s.CellH = img.Bounds().Dy() / s.Rows
		}
		a.sheets[s.Name] = &sheet{spec: s, img: ebiten.NewImageFromImage(img)}
	}
	return a, nil
}

func (a *Atlas) Sheet(name string) (*ebiten.Image, int, int, bool) {
	if a == nil {
		return nil, 0, 0, false
	}
	s, ok := a.sheets[name]
	if !ok {
		return nil, 0, 0, false
	}
	return s.img, s.spec.CellW, s.spec.CellH, true
}
