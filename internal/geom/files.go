package geom

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"citymap/internal/scene"
)

// Supported reports whether path has an importable extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".csv":
		return true
	}
	return false
}

// Load reads a .geojson or .csv file.
func Load(path string) ([]scene.Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson":
		return ReadGeoJSON(f)
	case ".csv":
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("unsupported file: %s", ext)
	}
}

// Save writes objs to path, choosing the format from the extension.
func Save(path string, objs []scene.Object) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return fmt.Errorf("unsupported file: %s", ext)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if ext == ".csv" {
		err = WriteCSV(f, objs)
	} else {
		err = WriteGeoJSON(f, objs)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
