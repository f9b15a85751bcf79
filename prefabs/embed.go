package prefabs

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DiskDir is checked before the embedded copy so edited prefabs win while
// developing. Empty disables the override.
var DiskDir = "prefabs"

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := readDisk(clean); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := readDisk(clean); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// Names lists the embedded prefab files.
func Names() []string {
	entries, err := fs.ReadDir(PrefabsFS, ".")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			out = append(out, e.Name())
		}
	}
	return out
}

func ModTime(name string) (time.Time, bool) {
	if DiskDir == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(filepath.Join(DiskDir, filepath.FromSlash(cleanPrefabPath(name))))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func readDisk(clean string) ([]byte, error) {
	if DiskDir == "" {
		return nil, os.ErrNotExist
	}
	return os.ReadFile(filepath.Join(DiskDir, filepath.FromSlash(clean)))
}

func cleanPrefabPath(path string) string {
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "prefabs/")
	if filepath.Ext(s) == "" && s != "" {
		s += ".yaml"
	}
	return s
}

func cleanScriptPath(path string) string {
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "prefabs/")
	s = strings.TrimPrefix(s, "scripts/")
	if filepath.Ext(s) == "" && s != "" {
		s += ".tengo"
	}
	return fmt.Sprintf("scripts/%s", s)
}
