package domain

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/mouse-blink/vislog/internal/adapter"
	m "github.com/mouse-blink/vislog/internal/model"
)

// Default archive entry names.
const (
	DefaultVersionEntry = "python_version.txt"
	DefaultModulesEntry = "modules.txt"
)

var stdlibInstall = regexp.MustCompile(`python[0-9]\.[0-9]`)

// JoinPaths joins the non-empty parts into a dotted path, trimming dots from
// the ends of each part.
func JoinPaths(parts ...string) string {
	kept := make([]string, 0, len(parts))

	for _, p := range parts {
		if p == "" {
			continue
		}

		kept = append(kept, strings.Trim(p, "."))
	}

	return strings.Join(kept, ".")
}

// IterPrefixes returns all non-empty prefixes of a dotted path, shortest first:
// "a.b.c" yields "a", "a.b", "a.b.c".
func IterPrefixes(path string) []string {
	return prefixes(path, ".")
}

func prefixes(path, sep string) []string {
	parts := strings.Split(path, sep)
	out := make([]string, 0, len(parts))

	for i := 1; i <= len(parts); i++ {
		if sep == "." {
			out = append(out, JoinPaths(parts[:i]...))
			continue
		}

		out = append(out, strings.Join(parts[:i], sep))
	}

	return out
}

// IsSource reports whether path belongs to the user's own project rather than
// a virtualenv, installed packages or a versioned standard-library install.
func IsSource(path string) bool {
	return !strings.Contains(path, ".virtualenvs") &&
		!strings.Contains(path, "site-packages") &&
		!stdlibInstall.MatchString(path)
}

// SourceFilter is IsSource plus extra path fragments that mark dependency
// code, such as GOROOT or the Go module cache. The zero value is IsSource.
type SourceFilter struct {
	Exclude []string
}

// Accept reports whether path is a source file.
func (f SourceFilter) Accept(path string) bool {
	if !IsSource(path) {
		return false
	}

	for _, marker := range f.Exclude {
		if marker != "" && strings.Contains(path, marker) {
			return false
		}
	}

	return true
}

// Packer gathers a program's own sources and environment into an archive.
type Packer interface {
	Gather(ctx context.Context, ns m.Namespace) (m.Bundle, error)
	Zip(ctx context.Context, ns m.Namespace, output m.Path) (m.Bundle, error)
}

// PackerOption configures a Packer.
type PackerOption func(*packer)

// WithSeparator sets the module path separator ("." by default, "/" for Go
// import paths).
func WithSeparator(sep string) PackerOption {
	return func(p *packer) {
		p.sep = sep
	}
}

// WithFilter replaces the default source filter.
func WithFilter(filter SourceFilter) PackerOption {
	return func(p *packer) {
		p.filter = filter
	}
}

// WithVersionEntry renames the archive entry holding the runtime version.
func WithVersionEntry(name string) PackerOption {
	return func(p *packer) {
		p.versionEntry = name
	}
}

// WithModulesEntry renames the archive entry holding the dependency list.
func WithModulesEntry(name string) PackerOption {
	return func(p *packer) {
		p.modulesEntry = name
	}
}

// WithLogger sets the logger for debug events.
func WithLogger(logger *slog.Logger) PackerOption {
	return func(p *packer) {
		if logger != nil {
			p.logger = logger
		}
	}
}

type packer struct {
	resolver adapter.ModuleResolver
	freezer  adapter.Freezer
	runtime  adapter.Runtime
	store    adapter.ArchiveStore

	sep          string
	filter       SourceFilter
	versionEntry string
	modulesEntry string
	logger       *slog.Logger
}

// NewPacker creates a Packer over the given collaborators.
func NewPacker(
	resolver adapter.ModuleResolver,
	freezer adapter.Freezer,
	runtime adapter.Runtime,
	store adapter.ArchiveStore,
	opts ...PackerOption,
) Packer {
	p := &packer{
		resolver:     resolver,
		freezer:      freezer,
		runtime:      runtime,
		store:        store,
		sep:          ".",
		versionEntry: DefaultVersionEntry,
		modulesEntry: DefaultModulesEntry,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Gather collects the runtime version, the dependency list and the source set
// reachable from the namespace bindings.
func (p *packer) Gather(ctx context.Context, ns m.Namespace) (m.Bundle, error) {
	version := p.runtime.Version()

	deps, err := p.freezer.Freeze(ctx)
	if err != nil {
		return m.Bundle{}, fmt.Errorf("freeze dependencies: %w", err)
	}

	// the snapshot's own file is kept even when the filter would reject it;
	// it is made absolute so it dedupes against resolved module files
	sources := make(map[m.Path]struct{})
	if ns.File != "" {
		file := string(ns.File)
		if abs, err := filepath.Abs(file); err == nil {
			file = abs
		}

		sources[m.Path(file)] = struct{}{}
	}

	for _, binding := range ns.Bindings {
		modPath, ok := binding.OwningModule()
		if !ok {
			continue
		}

		for _, name := range prefixes(modPath, p.sep) {
			rec, ok := p.resolver.Resolve(name)
			if !ok {
				p.logger.Debug("module not loaded", "binding", binding.Name, "module", name)
				continue
			}

			p.addRecord(rec, sources)
		}
	}

	return m.Bundle{
		Version:      version,
		Sources:      sortedPaths(sources),
		Dependencies: deps,
	}, nil
}

func (p *packer) addRecord(rec m.ModuleRecord, sources map[m.Path]struct{}) {
	for _, file := range rec.Files {
		if file == "" {
			continue
		}

		abs, err := filepath.Abs(string(file))
		if err != nil {
			continue
		}

		if _, seen := sources[m.Path(abs)]; seen {
			continue
		}

		if !p.filter.Accept(abs) {
			p.logger.Debug("dependency file skipped", "module", rec.Name, "file", abs)
			continue
		}

		p.logger.Debug("source file added", "module", rec.Name, "file", abs)
		sources[m.Path(abs)] = struct{}{}
	}
}

// Zip gathers and writes a new archive at output, replacing any existing one.
func (p *packer) Zip(ctx context.Context, ns m.Namespace, output m.Path) (m.Bundle, error) {
	bundle, err := p.Gather(ctx, ns)
	if err != nil {
		return m.Bundle{}, err
	}

	layout := adapter.ArchiveLayout{
		Files: make([]adapter.ArchiveFile, 0, len(bundle.Sources)),
		Entries: []adapter.ArchiveEntry{
			{Name: p.versionEntry, Data: []byte(bundle.Version)},
			{Name: p.modulesEntry, Data: []byte(strings.Join(bundle.Dependencies, "\n"))},
		},
	}

	for _, src := range bundle.Sources {
		layout.Files = append(layout.Files, adapter.ArchiveFile{Source: src})
	}

	if err := p.store.Write(output, layout); err != nil {
		return m.Bundle{}, fmt.Errorf("write archive %s: %w", output, err)
	}

	return bundle, nil
}

func sortedPaths(set map[m.Path]struct{}) []m.Path {
	paths := make([]m.Path, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	return paths
}
