package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "github.com/mouse-blink/vislog/internal/model"
)

const goFileExt = ".go"

// SourceFSAdapter abstracts the filesystem access needed to resolve Go
// packages to their source files, so resolvers can be tested without a real
// module on disk.
type SourceFSAdapter interface {
	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// FindProjectRoot searches for go.mod walking up the directory tree.
	FindProjectRoot(startPath m.Path) (m.Path, error)

	// PackageFiles lists the non-test Go files of the package in dir.
	PackageFiles(dir m.Path) ([]m.Path, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct {
	goFiles GoFileAdapter
}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{goFiles: NewLocalGoFileAdapter()}
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// FindProjectRoot searches for go.mod walking up the directory tree. A
// directory start path is searched itself first.
func (a *LocalSourceFSAdapter) FindProjectRoot(startPath m.Path) (m.Path, error) {
	dir := string(startPath)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return m.Path(dir), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found in any parent directory of %s", startPath)
		}

		dir = parent
	}
}

// PackageFiles returns the absolute paths of the non-test .go files in dir
// whose package clause parses. Missing directories yield no files.
func (a *LocalSourceFSAdapter) PackageFiles(dir m.Path) ([]m.Path, error) {
	info, err := a.FileInfo(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, err
	}

	if !info.IsDir() {
		return nil, nil
	}

	var files []m.Path

	err = a.Walk(dir, false, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		ok, err := a.isPackageFile(path)
		if err != nil {
			return err
		}

		if ok {
			files = append(files, m.Path(path))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, nil
}

func (a *LocalSourceFSAdapter) isPackageFile(path string) (bool, error) {
	if filepath.Ext(path) != goFileExt || strings.HasSuffix(path, "_test.go") {
		return false, nil
	}

	src, err := a.ReadFile(m.Path(path))
	if err != nil {
		return false, err
	}

	name, err := a.goFiles.PackageName(path, src)
	if err != nil || name == "" {
		return false, nil
	}

	return true, nil
}
