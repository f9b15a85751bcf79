package assets

import (
	"bytes"
	"embed"
	"image"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed *.png
var assetsFS embed.FS

// DecodeImage decodes an embedded image by assets-relative path.
func DecodeImage(path string) (image.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// LoadImage loads an embedded image as an *ebiten.Image.
func LoadImage(path string) (*ebiten.Image, error) {
	img, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	return strings.TrimPrefix(filepath.ToSlash(path), "assets/")
}
