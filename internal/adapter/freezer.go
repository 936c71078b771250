package adapter

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime/debug"
	"strings"

	"golang.org/x/mod/modfile"
)

// ErrNoBuildInfo is returned when the binary carries no module build info.
var ErrNoBuildInfo = errors.New("no build info available")

// Freezer lists the installed dependencies of an environment as
// "name==version" lines, in the order the environment reports them.
type Freezer interface {
	Freeze(ctx context.Context) ([]string, error)
}

// DefaultPipCommand is the command PipFreezer runs when none is configured.
var DefaultPipCommand = []string{"python", "-m", "pip", "freeze"}

// PipFreezer queries pip for the packages installed in the current environment.
type PipFreezer struct {
	command []string
}

// NewPipFreezer constructs a PipFreezer running command (DefaultPipCommand
// when empty).
func NewPipFreezer(command ...string) *PipFreezer {
	if len(command) == 0 {
		command = DefaultPipCommand
	}

	return &PipFreezer{command: command}
}

// Freeze runs the pip command and returns its non-empty output lines.
func (f *PipFreezer) Freeze(ctx context.Context) ([]string, error) {
	// #nosec G204 - the command comes from local configuration
	cmd := exec.CommandContext(ctx, f.command[0], f.command[1:]...)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", strings.Join(f.command, " "), err, strings.TrimSpace(stderr.String()))
	}

	return splitLines(out), nil
}

// StaticFreezer returns a fixed dependency list.
type StaticFreezer []string

// Freeze returns a copy of the list.
func (f StaticFreezer) Freeze(_ context.Context) ([]string, error) {
	return append([]string(nil), f...), nil
}

// BuildInfoFreezer lists the module dependencies compiled into the running binary.
type BuildInfoFreezer struct {
	read func() (*debug.BuildInfo, bool)
}

// NewBuildInfoFreezer constructs a BuildInfoFreezer backed by debug.ReadBuildInfo.
func NewBuildInfoFreezer() *BuildInfoFreezer {
	return &BuildInfoFreezer{read: debug.ReadBuildInfo}
}

// Freeze returns "path==version" for every dependency, with replacements
// reported at their replacement version.
func (f *BuildInfoFreezer) Freeze(_ context.Context) ([]string, error) {
	info, ok := f.read()
	if !ok || info == nil {
		return nil, ErrNoBuildInfo
	}

	deps := make([]string, 0, len(info.Deps))

	for _, dep := range info.Deps {
		mod := dep
		if dep.Replace != nil {
			mod = dep.Replace
		}

		deps = append(deps, dep.Path+"=="+mod.Version)
	}

	return deps, nil
}

// ModFileFreezer lists the requirements declared in a go.mod file.
type ModFileFreezer struct {
	path string
}

// NewModFileFreezer constructs a ModFileFreezer reading path.
func NewModFileFreezer(path string) *ModFileFreezer {
	return &ModFileFreezer{path: path}
}

// Freeze parses go.mod and returns "path==version" per require line, in file order.
func (f *ModFileFreezer) Freeze(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}

	file, err := modfile.Parse(f.path, data, nil)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}

	deps := make([]string, 0, len(file.Require))
	for _, req := range file.Require {
		deps = append(deps, req.Mod.Path+"=="+req.Mod.Version)
	}

	return deps, nil
}

func splitLines(out []byte) []string {
	var lines []string

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
