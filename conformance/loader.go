package conformance

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadedSuite pairs a suite with the file it was loaded from.
type LoadedSuite struct {
	File  string
	Suite Suite
}

// LoadAll reads every .yaml suite under dir.
func LoadAll(dir string) ([]LoadedSuite, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read suite directory: %w", err)
	}
	var loaded []LoadedSuite
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var suite Suite
		if err := yaml.Unmarshal(data, &suite); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		loaded = append(loaded, LoadedSuite{File: entry.Name(), Suite: suite})
	}
	return loaded, nil
}
