package adapter

import (
	"os/exec"
	"runtime"
	"strings"
)

// Runtime describes the interpreter or runtime a program runs on.
type Runtime interface {
	Version() string
}

// StaticRuntime is a fixed version string, e.g. "python 3.9.1".
type StaticRuntime string

// Version returns the string itself.
func (r StaticRuntime) Version() string {
	return string(r)
}

// GoRuntime reports the Go toolchain the binary was built with.
type GoRuntime struct{}

// Version returns "go <runtime.Version()>".
func (GoRuntime) Version() string {
	return "go " + runtime.Version()
}

// CommandRuntime asks an interpreter for its version, e.g. `python --version`.
type CommandRuntime struct {
	command []string
}

// NewCommandRuntime constructs a CommandRuntime running command.
func NewCommandRuntime(command ...string) *CommandRuntime {
	return &CommandRuntime{command: command}
}

// Version returns the lower-cased first output line ("python 3.9.1"), or
// "unknown" when the command cannot run.
func (r *CommandRuntime) Version() string {
	if len(r.command) == 0 {
		return "unknown"
	}

	// #nosec G204 - the command comes from local configuration
	out, err := exec.Command(r.command[0], r.command[1:]...).CombinedOutput()
	if err != nil {
		return "unknown"
	}

	lines := splitLines(out)
	if len(lines) == 0 {
		return "unknown"
	}

	return strings.ToLower(lines[0])
}
