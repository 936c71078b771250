package adapter

import (
	"go/parser"
	"go/token"
)

// GoFileAdapter encapsulates Go-specific parsing so resolvers can tell real
// package files from stray .go files without compiling anything.
type GoFileAdapter interface {
	// PackageName returns the name in the file's package clause.
	PackageName(filename string, src []byte) (string, error)
}

// LocalGoFileAdapter provides a concrete GoFileAdapter backed by go/parser.
type LocalGoFileAdapter struct{}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter.
func NewLocalGoFileAdapter() *LocalGoFileAdapter {
	return &LocalGoFileAdapter{}
}

// PackageName parses only the package clause of the provided source.
func (a *LocalGoFileAdapter) PackageName(filename string, src []byte) (string, error) {
	file, err := parser.ParseFile(token.NewFileSet(), filename, src, parser.PackageClauseOnly)
	if err != nil {
		return "", err
	}

	if file.Name == nil {
		return "", nil
	}

	return file.Name.Name, nil
}
