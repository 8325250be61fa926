package catalog

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML mood table of the form
//
//	happy:
//	  - title: EDM Bangers
//	    source: spotify
//	    url: https://open.spotify.com/playlist/...
func Parse(data []byte) (*Catalog, error) {
	var moods map[string][]Entry
	if err := yaml.Unmarshal(data, &moods); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}

	for mood, entries := range moods {
		for i, e := range entries {
			if e.Title == "" || e.URL == "" {
				return nil, fmt.Errorf("catalog: %s[%d]: title and url are required", mood, i)
			}
		}
	}

	return New(moods)
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// LoadFS reads a YAML catalog from a filesystem, typically an embedded one.
func LoadFS(fsys fs.FS, name string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", name, err)
	}
	return Parse(data)
}
