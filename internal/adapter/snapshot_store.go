package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/vislog/internal/model"
)

// Snapshot is a namespace snapshot exported from a running program together
// with the module registry it was taken against.
type Snapshot struct {
	Namespace m.Namespace
	Modules   *Registry
	// Version is the runtime version recorded by the exporter, if any.
	Version string
	// Dependencies is the dependency list recorded by the exporter. Nil when
	// the exporter did not record one.
	Dependencies []string
}

// SnapshotStore loads namespace snapshots.
type SnapshotStore interface {
	LoadSnapshot(path m.Path) (Snapshot, error)
}

type snapshotYAML struct {
	File         string            `yaml:"file,omitempty"`
	Version      string            `yaml:"version,omitempty"`
	Dependencies []string          `yaml:"dependencies,omitempty"`
	Bindings     []bindingYAML     `yaml:"bindings"`
	Modules      map[string]string `yaml:"modules"`
}

type bindingYAML struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Module string `yaml:"module,omitempty"`
}

// LocalSnapshotStore reads snapshots from YAML (or JSON) files on disk.
type LocalSnapshotStore struct{}

// NewSnapshotStore constructs a SnapshotStore implementation.
func NewSnapshotStore() SnapshotStore {
	return &LocalSnapshotStore{}
}

// LoadSnapshot decodes the snapshot at path. Modules mapped to an empty file
// are registered without files.
func (s *LocalSnapshotStore) LoadSnapshot(path m.Path) (Snapshot, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return Snapshot{}, err
	}

	var raw snapshotYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot %s: %w", path, err)
	}

	ns := m.Namespace{File: m.Path(raw.File)}

	for i, b := range raw.Bindings {
		kind, err := parseBindingKind(b.Kind)
		if err != nil {
			return Snapshot{}, fmt.Errorf("snapshot %s: binding %d (%s): %w", path, i, b.Name, err)
		}

		ns.Bindings = append(ns.Bindings, m.Binding{Name: b.Name, Kind: kind, Module: b.Module})
	}

	records := make([]m.ModuleRecord, 0, len(raw.Modules))

	for name, file := range raw.Modules {
		rec := m.ModuleRecord{Name: name}
		if file != "" {
			rec.Files = []m.Path{m.Path(file)}
		}

		records = append(records, rec)
	}

	return Snapshot{
		Namespace:    ns,
		Modules:      NewRegistry(records...),
		Version:      raw.Version,
		Dependencies: raw.Dependencies,
	}, nil
}

func parseBindingKind(kind string) (m.BindingKind, error) {
	switch m.BindingKind(kind) {
	case m.BindingModule, m.BindingDefined, m.BindingOther:
		return m.BindingKind(kind), nil
	case "":
		return m.BindingOther, nil
	default:
		return "", fmt.Errorf("unknown binding kind %q", kind)
	}
}
