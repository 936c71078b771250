package adapter

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStaticFreezer_ReturnsCopy(t *testing.T) {
	f := StaticFreezer{"a==1", "b==2"}

	deps, err := f.Freeze(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"a==1", "b==2"}, deps)

	deps[0] = "changed"
	require.Equal(t, "a==1", f[0])
}

func TestPipFreezer_SplitsOutput(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	f := NewPipFreezer("sh", "-c", `printf 'numpy==1.21.0\n\n  torch==1.9.0  \n'`)

	deps, err := f.Freeze(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"numpy==1.21.0", "torch==1.9.0"}, deps)
}

func TestPipFreezer_CommandFailure(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	f := NewPipFreezer("sh", "-c", "echo broken >&2; exit 3")

	_, err := f.Freeze(context.Background())
	require.ErrorContains(t, err, "broken")
}

func TestNewPipFreezer_Default(t *testing.T) {
	require.Equal(t, DefaultPipCommand, NewPipFreezer().command)
}

func TestBuildInfoFreezer(t *testing.T) {
	f := &BuildInfoFreezer{read: func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Deps: []*debug.Module{
			{Path: "github.com/spf13/cobra", Version: "v1.10.2"},
			{Path: "example.com/forked", Version: "v1.0.0", Replace: &debug.Module{Path: "../forked", Version: "v1.0.1"}},
		}}, true
	}}

	deps, err := f.Freeze(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"github.com/spf13/cobra==v1.10.2", "example.com/forked==v1.0.1"}, deps)

	missing := &BuildInfoFreezer{read: func() (*debug.BuildInfo, bool) { return nil, false }}

	_, err = missing.Freeze(context.Background())
	require.ErrorIs(t, err, ErrNoBuildInfo)
}

func TestModFileFreezer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go.mod")
	content := `module example.com/app

go 1.25

require (
	github.com/spf13/cobra v1.10.2
	golang.org/x/sync v0.17.0 // indirect
)
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	deps, err := NewModFileFreezer(path).Freeze(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"github.com/spf13/cobra==v1.10.2", "golang.org/x/sync==v0.17.0"}, deps)

	_, err = NewModFileFreezer(filepath.Join(t.TempDir(), "missing.mod")).Freeze(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}
