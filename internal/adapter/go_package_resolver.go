package adapter

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	m "github.com/mouse-blink/vislog/internal/model"
)

// GoPackageResolver resolves Go import paths that live inside a single Go
// module to the source files of that package.
type GoPackageResolver struct {
	fs         SourceFSAdapter
	root       m.Path
	modulePath string
}

// NewGoPackageResolver finds the module enclosing start and reads its module
// path from go.mod.
func NewGoPackageResolver(fs SourceFSAdapter, start m.Path) (*GoPackageResolver, error) {
	absStart, err := filepath.Abs(string(start))
	if err != nil {
		return nil, err
	}

	root, err := fs.FindProjectRoot(m.Path(absStart))
	if err != nil {
		return nil, err
	}

	goMod := filepath.Join(string(root), "go.mod")

	data, err := fs.ReadFile(m.Path(goMod))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", goMod, err)
	}

	modulePath := modfile.ModulePath(data)
	if modulePath == "" {
		return nil, fmt.Errorf("%s: missing module directive", goMod)
	}

	return &GoPackageResolver{fs: fs, root: root, modulePath: modulePath}, nil
}

// ModulePath returns the module path declared in go.mod.
func (r *GoPackageResolver) ModulePath() string {
	return r.modulePath
}

// Root returns the module root directory.
func (r *GoPackageResolver) Root() m.Path {
	return r.root
}

// Resolve maps an import path inside the module to its package files.
// Paths outside the module and directories without Go files do not resolve.
func (r *GoPackageResolver) Resolve(name string) (m.ModuleRecord, bool) {
	var rel string

	switch {
	case name == r.modulePath:
		rel = ""
	case strings.HasPrefix(name, r.modulePath+"/"):
		rel = strings.TrimPrefix(name, r.modulePath+"/")
	default:
		return m.ModuleRecord{}, false
	}

	dir := filepath.Join(string(r.root), filepath.FromSlash(rel))

	files, err := r.fs.PackageFiles(m.Path(dir))
	if err != nil || len(files) == 0 {
		return m.ModuleRecord{}, false
	}

	return m.ModuleRecord{Name: name, Files: files}, true
}
