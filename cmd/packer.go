package cmd

import (
	"go/build"
	"path/filepath"

	"github.com/mouse-blink/vislog/internal/adapter"
	"github.com/mouse-blink/vislog/internal/domain"
	m "github.com/mouse-blink/vislog/internal/model"
)

// buildPacker wires a Packer for a snapshot. With goModule set, bindings are
// Go import paths resolved inside that module; otherwise they are dotted
// module names resolved against the snapshot's own registry.
func buildPacker(snap adapter.Snapshot, goModule string) (domain.Packer, error) {
	exclude := append([]string(nil), cfg.Exclude...)

	if goModule != "" {
		resolver, err := adapter.NewGoPackageResolver(sourceFS, m.Path(goModule))
		if err != nil {
			return nil, err
		}

		exclude = append(exclude, string(filepath.Separator)+filepath.Join("pkg", "mod")+string(filepath.Separator))
		if build.Default.GOROOT != "" {
			exclude = append(exclude, build.Default.GOROOT)
		}

		logger.Debug("resolving go packages", "module", resolver.ModulePath(), "root", resolver.Root())

		return domain.NewPacker(
			resolver,
			adapter.NewModFileFreezer(filepath.Join(string(resolver.Root()), "go.mod")),
			adapter.GoRuntime{},
			archiveStore,
			domain.WithSeparator("/"),
			domain.WithFilter(domain.SourceFilter{Exclude: exclude}),
			domain.WithLogger(logger),
		), nil
	}

	var freezer adapter.Freezer = adapter.NewPipFreezer(cfg.Pip...)
	if snap.Dependencies != nil {
		freezer = adapter.StaticFreezer(snap.Dependencies)
	}

	var runtime adapter.Runtime = adapter.StaticRuntime(snap.Version)
	if snap.Version == "" && len(cfg.Pip) > 0 {
		runtime = adapter.NewCommandRuntime(cfg.Pip[0], "--version")
	}

	return domain.NewPacker(
		snap.Modules,
		freezer,
		runtime,
		archiveStore,
		domain.WithFilter(domain.SourceFilter{Exclude: exclude}),
		domain.WithLogger(logger),
	), nil
}
