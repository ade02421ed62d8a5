package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrProfileNotFound = errors.New("profile not found")

// Profile is a named parameter preset stored as YAML.
type Profile struct {
	// ID is the file name without extension (e.g. "2_swing").
	ID          string
	Name        string
	Description string
	File        string
	Simulation  SimulationConfig
}

type profileFile struct {
	Profile struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"profile"`
	Simulation SimulationConfig `yaml:"simulation"`
}

func LoadProfile(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, path)
		}
		return nil, err
	}
	var f profileFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name := f.Profile.Name
	if name == "" {
		name = id
	}
	return &Profile{
		ID:          id,
		Name:        name,
		Description: f.Profile.Description,
		File:        path,
		Simulation:  f.Simulation,
	}, nil
}

// ProfilePath resolves a profile ID inside dir. IDs are bare file names;
// anything that would escape dir is rejected.
func ProfilePath(dir, id string) (string, error) {
	id = strings.TrimSuffix(strings.TrimSpace(id), ".yaml")
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("%w: invalid id %q", ErrProfileNotFound, id)
	}
	return filepath.Join(dir, id+".yaml"), nil
}

// ListProfiles loads every *.yaml preset in dir, sorted by ID.
// Files that fail to parse are skipped and returned in skipped.
func ListProfiles(dir string) (profiles []Profile, skipped map[string]error, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	skipped = map[string]error{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		p, err := LoadProfile(path)
		if err != nil {
			skipped[path] = err
			continue
		}
		profiles = append(profiles, *p)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].ID < profiles[j].ID
	})
	return profiles, skipped, nil
}
