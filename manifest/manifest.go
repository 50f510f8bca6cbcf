// Package manifest handles wren.toml project configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/redthing1/wren-port/vm"
)

// Manifest represents a wren.toml project configuration.
type Manifest struct {
	Project Project  `toml:"project"`
	Source  Source   `toml:"source"`
	VM      VMTuning `toml:"vm"`

	// Dir is the directory containing the wren.toml file (set at load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Source configures source file locations for the host driver.
type Source struct {
	Dirs  []string `toml:"dirs"`
	Entry string   `toml:"entry"`
}

// VMTuning configures the runtime's collector and diagnostics.
type VMTuning struct {
	InitialHeapSize   uint64 `toml:"initial-heap-size"`
	MinHeapSize       uint64 `toml:"min-heap-size"`
	HeapGrowthPercent int    `toml:"heap-growth-percent"`
	Trace             bool   `toml:"trace"`
}

// Load parses a wren.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "wren.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if len(m.Source.Dirs) == 0 {
		m.Source.Dirs = []string{"src"}
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find a wren.toml file, then loads
// and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "wren.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// SourceDirPaths returns absolute paths for the configured source directories.
func (m *Manifest) SourceDirPaths() []string {
	var paths []string
	for _, d := range m.Source.Dirs {
		paths = append(paths, filepath.Join(m.Dir, d))
	}
	return paths
}

// VMConfig converts the manifest's tuning section into a runtime
// configuration. Zero values fall through to the runtime's defaults.
func (m *Manifest) VMConfig() *vm.Config {
	return &vm.Config{
		InitialHeapSize:   m.VM.InitialHeapSize,
		MinHeapSize:       m.VM.MinHeapSize,
		HeapGrowthPercent: m.VM.HeapGrowthPercent,
	}
}
