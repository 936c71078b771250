package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/vislog/internal/adapter"
	adaptermocks "github.com/mouse-blink/vislog/internal/adapter/mocks"
	"github.com/mouse-blink/vislog/internal/config"
	"github.com/mouse-blink/vislog/internal/controller"
	controllermocks "github.com/mouse-blink/vislog/internal/controller/mocks"
	"github.com/mouse-blink/vislog/internal/domain"
	m "github.com/mouse-blink/vislog/internal/model"
)

// executeCmd runs a fresh command tree with the UI replaced by ui.
func executeCmd(t *testing.T, ui controller.UI, args ...string) (string, error) {
	t.Helper()

	originalUI := newUI
	newUI = func(_ *cobra.Command) controller.UI { return ui }

	t.Cleanup(func() { newUI = originalUI })

	root := newRootCmd()
	root.AddCommand(newPackCmd(), newSourcesCmd(), newViewCmd(), newPlotCmd())

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func withPublisher(t *testing.T, publisher adapter.Publisher) {
	t.Helper()

	original := newPublisher
	newPublisher = func(_ config.ArtifactConfig) (adapter.Publisher, error) { return publisher, nil }

	t.Cleanup(func() { newPublisher = original })
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}

	return path
}

// pythonProject lays out a project with one user module and a snapshot
// binding it next to a stdlib module.
func pythonProject(t *testing.T) (dir, snapshot string) {
	t.Helper()

	dir = t.TempDir()
	train := writeFile(t, filepath.Join(dir, "proj", "train.py"), "from mypkg.util import helper\n")
	util := writeFile(t, filepath.Join(dir, "proj", "mypkg", "util.py"), "def helper(): pass\n")

	snapshot = writeFile(t, filepath.Join(dir, "snapshot.yaml"), `file: `+train+`
version: python 3.9.1
dependencies:
  - numpy==1.21.0
bindings:
  - {name: helper, kind: defined, module: mypkg.util}
  - {name: os, kind: module, module: os}
  - {name: lr, kind: other}
modules:
  mypkg.util: `+util+`
  os: /usr/lib/python3.9/os.py
`)

	return dir, snapshot
}

func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "vislog.yaml")
}

func TestPackCmd_WritesArchive(t *testing.T) {
	dir, snapshot := pythonProject(t)
	output := filepath.Join(dir, "sources.zip")

	mockUI := controllermocks.NewMockUI(t)
	mockUI.On("DisplayBundle", m.Bundle{
		Version: "python 3.9.1",
		Sources: []m.Path{
			m.Path(filepath.Join(dir, "proj", "mypkg", "util.py")),
			m.Path(filepath.Join(dir, "proj", "train.py")),
		},
		Dependencies: []string{"numpy==1.21.0"},
	}).Return(nil)

	_, err := executeCmd(t, mockUI, "pack", snapshot, "-o", output, "-c", missingConfig(t))
	require.NoError(t, err)

	contents, err := adapter.NewZipArchiveStore().Read(m.Path(output), "python_version.txt", "modules.txt")
	require.NoError(t, err)
	assert.Equal(t, "python 3.9.1", contents.Version)
	assert.Equal(t, []string{"numpy==1.21.0"}, contents.Dependencies)

	names := make([]string, 0, len(contents.Members))
	for _, member := range contents.Members {
		names = append(names, member.Name)
	}

	assert.Contains(t, names, adapter.MemberName(m.Path(filepath.Join(dir, "proj", "train.py"))))
	assert.NotContains(t, names, "usr/lib/python3.9/os.py")
}

func TestPackCmd_Upload(t *testing.T) {
	dir, snapshot := pythonProject(t)
	output := filepath.Join(dir, "sources.zip")

	mockPublisher := adaptermocks.NewMockPublisher(t)
	mockPublisher.On("Publish", mock.Anything, m.Path(output), "runs/1/sources.zip").Return(nil)
	withPublisher(t, mockPublisher)

	mockUI := controllermocks.NewMockUI(t)
	mockUI.On("DisplayBundle", mock.Anything).Return(nil)

	_, err := executeCmd(t, mockUI, "pack", snapshot, "-o", output, "--upload", "runs/1/sources.zip", "-c", missingConfig(t))
	require.NoError(t, err)
}

func TestPackCmd_UploadDisabled(t *testing.T) {
	dir, snapshot := pythonProject(t)

	mockUI := controllermocks.NewMockUI(t)

	_, err := executeCmd(t, mockUI, "pack", snapshot, "-o", filepath.Join(dir, "out.zip"), "--upload", "out.zip", "-c", missingConfig(t))
	require.ErrorIs(t, err, adapter.ErrPublisherDisabled)
}

func TestPackCmd_MissingSnapshot(t *testing.T) {
	mockUI := controllermocks.NewMockUI(t)

	_, err := executeCmd(t, mockUI, "pack", filepath.Join(t.TempDir(), "missing.yaml"), "-c", missingConfig(t))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSourcesCmd(t *testing.T) {
	dir, snapshot := pythonProject(t)

	mockUI := controllermocks.NewMockUI(t)
	mockUI.On("DisplayBundle", mock.MatchedBy(func(b m.Bundle) bool {
		return len(b.Sources) == 2 && b.Sources[0] == m.Path(filepath.Join(dir, "proj", "mypkg", "util.py"))
	})).Return(nil)

	_, err := executeCmd(t, mockUI, "sources", snapshot, "-c", missingConfig(t))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "sources.zip"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSourcesCmd_GoModule(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/app\n\ngo 1.25\n\nrequire github.com/spf13/cobra v1.10.2\n")
	mainFile := writeFile(t, filepath.Join(root, "main.go"), "package main\n")
	trainFile := writeFile(t, filepath.Join(root, "internal", "train", "train.go"), "package train\n")
	writeFile(t, filepath.Join(root, "internal", "train", "train_test.go"), "package train\n")

	snapshot := writeFile(t, filepath.Join(t.TempDir(), "snapshot.yaml"), `file: `+mainFile+`
bindings:
  - {name: Fit, kind: defined, module: example.com/app/internal/train}
  - {name: cobra, kind: module, module: github.com/spf13/cobra}
`)

	mockUI := controllermocks.NewMockUI(t)
	mockUI.On("DisplayBundle", mock.MatchedBy(func(b m.Bundle) bool {
		return strings.HasPrefix(b.Version, "go ") &&
			assert.ObjectsAreEqual([]m.Path{m.Path(trainFile), m.Path(mainFile)}, b.Sources) &&
			assert.ObjectsAreEqual([]string{"github.com/spf13/cobra==v1.10.2"}, b.Dependencies)
	})).Return(nil)

	_, err := executeCmd(t, mockUI, "sources", snapshot, "--go-module", root, "-c", missingConfig(t))
	require.NoError(t, err)
}

func TestViewCmd(t *testing.T) {
	dir, snapshot := pythonProject(t)
	output := filepath.Join(dir, "sources.zip")

	packUI := controllermocks.NewMockUI(t)
	packUI.On("DisplayBundle", mock.Anything).Return(nil)

	_, err := executeCmd(t, packUI, "pack", snapshot, "-o", output, "-c", missingConfig(t))
	require.NoError(t, err)

	viewUI := controllermocks.NewMockUI(t)
	viewUI.On("DisplayArchive", mock.MatchedBy(func(c m.ArchiveContents) bool {
		return c.Path == m.Path(output) && c.Version == "python 3.9.1" && len(c.Members) == 4
	})).Return(nil)

	_, err = executeCmd(t, viewUI, "view", output, "-c", missingConfig(t))
	require.NoError(t, err)
}

func TestPlotCmd(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, filepath.Join(dir, "vislog.yaml"), "img_dir: "+filepath.Join(dir, "img")+
		"\nplot_dir: "+filepath.Join(dir, "plots")+"\nwidth: 320\nheight: 240\n")

	first := writeFile(t, filepath.Join(dir, "first.yaml"), `kind: line
name: trend
x: [0, 1, 2]
y: [1, 4, 9]
---
kind: value
name: loss
values: [0.9, 0.5]
`)
	second := writeFile(t, filepath.Join(dir, "second.yaml"), `kind: image
name: digit
image: [[0, 1], [1, 0]]
`)

	want := []m.Path{
		m.Path(filepath.Join(dir, "img", "digit.svg")),
		m.Path(filepath.Join(dir, "plots", "loss.svg")),
		m.Path(filepath.Join(dir, "plots", "trend.svg")),
	}

	mockUI := controllermocks.NewMockUI(t)
	mockUI.On("DisplaySaved", want).Return(nil)

	_, err := executeCmd(t, mockUI, "plot", first, second, "--parallel", "2", "--format", ".svg", "-c", configPath)
	require.NoError(t, err)

	for _, p := range want {
		_, err := os.Stat(string(p))
		require.NoError(t, err)
	}
}

func TestPlotCmd_Upload(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, filepath.Join(dir, "vislog.yaml"), "img_dir: "+filepath.Join(dir, "img")+
		"\nplot_dir: "+filepath.Join(dir, "plots")+"\n")
	payloads := writeFile(t, filepath.Join(dir, "bars.yaml"), "kind: bar\nname: counts\nvalues: [1, 2, 3]\n")

	saved := m.Path(filepath.Join(dir, "plots", "counts.png"))

	mockPublisher := adaptermocks.NewMockPublisher(t)
	mockPublisher.On("Publish", mock.Anything, saved, "exp/counts.png").Return(nil)
	withPublisher(t, mockPublisher)

	mockUI := controllermocks.NewMockUI(t)
	mockUI.On("DisplaySaved", []m.Path{saved}).Return(nil)

	_, err := executeCmd(t, mockUI, "plot", payloads, "--upload", "exp", "-c", configPath)
	require.NoError(t, err)
}

func TestPlotCmd_BadPayload(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, filepath.Join(dir, "vislog.yaml"), "img_dir: "+filepath.Join(dir, "img")+
		"\nplot_dir: "+filepath.Join(dir, "plots")+"\n")
	payloads := writeFile(t, filepath.Join(dir, "bad.yaml"), "kind: line\nname: broken\nx: [1, 2]\ny: [1]\n")

	mockUI := controllermocks.NewMockUI(t)

	_, err := executeCmd(t, mockUI, "plot", payloads, "-c", configPath)
	require.ErrorIs(t, err, adapter.ErrSeriesMismatch)
}

func TestRenderFiles_SharedValueHistoryFollowsArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, filepath.Join(dir, "a.yaml"), "kind: value\nname: loss\nvalues: [1, 2]\n"),
		writeFile(t, filepath.Join(dir, "b.yaml"), "kind: line\nname: trend\nx: [0, 1]\ny: [1, 2]\n"),
		writeFile(t, filepath.Join(dir, "c.yaml"), "kind: value\nname: loss\nvalue: 3\n"),
	}

	originalParallel := plotParallelFlag
	plotParallelFlag = 3

	t.Cleanup(func() { plotParallelFlag = originalParallel })

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	for range 10 {
		renderer := adaptermocks.NewMockRenderer(t)
		figure := adaptermocks.NewMockFigure(t)

		renderer.On("Render", mock.Anything, mock.Anything).Return(figure, nil)
		figure.On("SaveTo", mock.Anything).Return(nil)

		plotLogger := domain.NewPlotLogger(renderer, "img", "plots")

		saved, err := renderFiles(cmd, plotLogger, files, ".png")
		require.NoError(t, err)

		assert.Equal(t, []float64{1, 2, 3}, plotLogger.History("loss"))
		assert.Equal(t, []m.Path{
			m.Path(filepath.Join("plots", "loss.png")),
			m.Path(filepath.Join("plots", "trend.png")),
		}, saved)
	}
}

func TestPlotCmd_EmptyValuePayload(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, filepath.Join(dir, "vislog.yaml"), "img_dir: "+filepath.Join(dir, "img")+
		"\nplot_dir: "+filepath.Join(dir, "plots")+"\n")
	payloads := writeFile(t, filepath.Join(dir, "typo.yaml"), "kind: value\nname: loss\nvalu: 0.5\n")

	mockUI := controllermocks.NewMockUI(t)

	_, err := executeCmd(t, mockUI, "plot", payloads, "-c", configPath)
	require.ErrorIs(t, err, adapter.ErrEmptyPayload)
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.Equal(t, "vislog.yaml", configFlag.DefValue)

	levelFlag := cmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, levelFlag)
	assert.Equal(t, "info", levelFlag.DefValue)
}

func TestNewLogger(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{level: "debug", enabled: slog.LevelDebug, muted: slog.LevelDebug - 4},
		{level: "INFO", enabled: slog.LevelInfo, muted: slog.LevelDebug},
		{level: "warn", enabled: slog.LevelWarn, muted: slog.LevelInfo},
		{level: "error", enabled: slog.LevelError, muted: slog.LevelWarn},
		{level: "bogus", enabled: slog.LevelInfo, muted: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := newLogger(tt.level)
			assert.True(t, l.Enabled(ctx, tt.enabled))
			assert.False(t, l.Enabled(ctx, tt.muted))
		})
	}
}

func TestDefaultPublisher(t *testing.T) {
	p, err := defaultPublisher(config.ArtifactConfig{})
	require.NoError(t, err)
	assert.IsType(t, adapter.NopPublisher{}, p)

	p, err = defaultPublisher(config.ArtifactConfig{Endpoint: "localhost:9000", Bucket: "runs", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	assert.IsType(t, &adapter.S3Publisher{}, p)

	_, err = defaultPublisher(config.ArtifactConfig{Endpoint: "localhost:9000", Bucket: "runs"})
	require.Error(t, err)
}

func TestUploadKey(t *testing.T) {
	assert.Equal(t, "trend.png", uploadKey("", "plots/trend.png"))
	assert.Equal(t, "exp/trend.png", uploadKey("exp", "plots/trend.png"))
}
