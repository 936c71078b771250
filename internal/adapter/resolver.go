// Package adapter contains the infrastructure behind the packer and the plot logger.
package adapter

import (
	m "github.com/mouse-blink/vislog/internal/model"
)

// ModuleResolver looks up a loaded module by its dotted (or import) path.
// Implementations must be read-only from the caller's point of view.
type ModuleResolver interface {
	Resolve(name string) (m.ModuleRecord, bool)
}

// Registry is a map-backed ModuleResolver. It is not modified after
// construction, so it can be shared freely.
type Registry struct {
	modules map[string]m.ModuleRecord
}

// NewRegistry builds a Registry from the given records, keyed by record name.
// Later records with the same name replace earlier ones.
func NewRegistry(records ...m.ModuleRecord) *Registry {
	modules := make(map[string]m.ModuleRecord, len(records))
	for _, rec := range records {
		modules[rec.Name] = rec
	}

	return &Registry{modules: modules}
}

// Resolve returns the record registered under name.
func (r *Registry) Resolve(name string) (m.ModuleRecord, bool) {
	if r == nil {
		return m.ModuleRecord{}, false
	}

	rec, ok := r.modules[name]

	return rec, ok
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.modules)
}
