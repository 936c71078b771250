// Package model defines the data structures shared by the packer and the plot logger.
package model

// Path represents a file system path.
type Path string

// BindingKind tells how a namespace binding relates to a module.
type BindingKind string

const (
	// BindingModule is a binding whose value is itself a module.
	BindingModule BindingKind = "module"

	// BindingDefined is a binding whose value was defined inside a module
	// (function, class, instance).
	BindingDefined BindingKind = "defined"

	// BindingOther is a binding with no owning module.
	BindingOther BindingKind = "other"
)

// Binding is one name->object entry of a namespace snapshot.
type Binding struct {
	Name string
	Kind BindingKind
	// Module is the module's own dotted name for BindingModule and the
	// defining module's dotted name for BindingDefined.
	Module string
}

// OwningModule returns the dotted path the binding resolves through, or false
// when the binding carries none.
func (b Binding) OwningModule() (string, bool) {
	switch b.Kind {
	case BindingModule, BindingDefined:
		if b.Module == "" {
			return "", false
		}

		return b.Module, true
	default:
		return "", false
	}
}

// Namespace is a read-only snapshot of a program's top-level scope.
type Namespace struct {
	// File is the snapshot's own originating file. Empty when unknown.
	File     Path
	Bindings []Binding
}

// ModuleRecord is a loaded module as seen by a module registry.
type ModuleRecord struct {
	Name  string
	Files []Path
}
