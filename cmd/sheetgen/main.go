// Command sheetgen writes a placeholder PNG for every sheet in
// prefabs/atlases.yaml, sized to the sheet's grid.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/milk9111/rustyfarm/assets"
	"github.com/milk9111/rustyfarm/prefabs"
)

func main() {
	out := flag.String("out", "assets", "output directory")
	only := flag.String("sheet", "", "only write this sheet")
	force := flag.Bool("f", false, "overwrite existing images")
	flag.Parse()

	spec, err := prefabs.LoadAtlasesSpec()
	if err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatal(err)
	}

	written := 0
	for _, sheet := range spec.Sheets {
		if *only != "" && sheet.Name != *only {
			continue
		}
		name := sheet.Image
		if name == "" {
			name = sheet.Name + ".png"
		}
		path := filepath.Join(*out, name)
		if _, err := os.Stat(path); err == nil && !*force {
			log.Printf("sheetgen: %s exists, skipping (use -f)", path)
			continue
		}
		if err := gg.SavePNG(path, assets.Placeholder(sheet)); err != nil {
			log.Fatalf("sheetgen: %s: %v", path, err)
		}
		log.Printf("sheetgen: wrote %s (%dx%d cells of %dx%d)", path, sheet.Cols, sheet.Rows, sheet.CellW, sheet.CellH)
		written++
	}
	if *only != "" && written == 0 {
		log.Printf("sheetgen: nothing written for %q", *only)
	}
}
