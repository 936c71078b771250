package adapter

import (
	"os/exec"
	"strings"
	"testing"
)

func TestStaticRuntime(t *testing.T) {
	if got := StaticRuntime("python 3.9.1").Version(); got != "python 3.9.1" {
		t.Fatalf("Version() = %q", got)
	}
}

func TestGoRuntime(t *testing.T) {
	if got := (GoRuntime{}).Version(); !strings.HasPrefix(got, "go ") {
		t.Fatalf("Version() = %q, want go prefix", got)
	}
}

func TestCommandRuntime(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	if got := NewCommandRuntime("sh", "-c", "echo Python 3.9.1").Version(); got != "python 3.9.1" {
		t.Fatalf("Version() = %q, want python 3.9.1", got)
	}

	if got := NewCommandRuntime("sh", "-c", "exit 1").Version(); got != "unknown" {
		t.Fatalf("failing command Version() = %q, want unknown", got)
	}

	if got := NewCommandRuntime().Version(); got != "unknown" {
		t.Fatalf("empty command Version() = %q, want unknown", got)
	}
}
