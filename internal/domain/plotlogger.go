package domain

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/mouse-blink/vislog/internal/adapter"
	m "github.com/mouse-blink/vislog/internal/model"
)

// DefaultFormat is the file suffix used when no format is given.
const DefaultFormat = ".png"

// ShowOption is a functional option for the Show* methods.
type ShowOption func(*showConfig)

type showConfig struct {
	format string
}

// WithFormat sets the file suffix, e.g. ".svg". Only the extension changes.
func WithFormat(format string) ShowOption {
	return func(c *showConfig) {
		if format != "" {
			c.format = format
		}
	}
}

// PlotLogger renders named payloads and saves each as one file under a fixed
// image or plot directory. Directories are not created or checked.
type PlotLogger struct {
	renderer adapter.Renderer
	imgDir   string
	plotDir  string

	mu     sync.Mutex
	values map[string][]float64
}

// NewPlotLogger creates a PlotLogger writing images to imgDir and plots to plotDir.
func NewPlotLogger(renderer adapter.Renderer, imgDir, plotDir string) *PlotLogger {
	return &PlotLogger{
		renderer: renderer,
		imgDir:   imgDir,
		plotDir:  plotDir,
		values:   make(map[string][]float64),
	}
}

// ImageDir returns the directory images are written to.
func (l *PlotLogger) ImageDir() string { return l.imgDir }

// PlotDir returns the directory plots are written to.
func (l *PlotLogger) PlotDir() string { return l.plotDir }

// ShowImage saves image as <imgDir>/<name><format>.
func (l *PlotLogger) ShowImage(image [][]float64, name string, opts ...ShowOption) (m.Path, error) {
	return l.show(l.imgDir, m.Payload{Kind: m.PlotImage, Name: name, Image: image}, opts)
}

// History returns a copy of the values recorded for name.
func (l *PlotLogger) History(name string) []float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]float64(nil), l.values[name]...)
}

// ShowValue appends value to the history kept for name and plots the whole
// history as <plotDir>/<name><format>.
func (l *PlotLogger) ShowValue(value float64, name string, opts ...ShowOption) (m.Path, error) {
	l.mu.Lock()
	l.values[name] = append(l.values[name], value)
	history := append([]float64(nil), l.values[name]...)
	l.mu.Unlock()

	return l.show(l.plotDir, m.Payload{Kind: m.PlotValue, Name: name, Values: history}, opts)
}

// ShowBarplot saves a bar chart of values.
func (l *PlotLogger) ShowBarplot(values []float64, name string, opts ...ShowOption) (m.Path, error) {
	return l.show(l.plotDir, m.Payload{Kind: m.PlotBar, Name: name, Values: values}, opts)
}

// ShowLineplot saves a line plot. Callers pass the y series first; the
// renderer always receives X=x and Y=y.
func (l *PlotLogger) ShowLineplot(y, x []float64, name string, opts ...ShowOption) (m.Path, error) {
	return l.show(l.plotDir, m.Payload{Kind: m.PlotLine, Name: name, X: x, Y: y}, opts)
}

// ShowScatterplot saves a scatter plot of (x, y) points.
func (l *PlotLogger) ShowScatterplot(points [][2]float64, name string, opts ...ShowOption) (m.Path, error) {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))

	for i, pt := range points {
		xs[i], ys[i] = pt[0], pt[1]
	}

	return l.show(l.plotDir, m.Payload{Kind: m.PlotScatter, Name: name, X: xs, Y: ys}, opts)
}

// ShowPiechart saves a pie chart of values.
func (l *PlotLogger) ShowPiechart(values []float64, name string, opts ...ShowOption) (m.Path, error) {
	return l.show(l.plotDir, m.Payload{Kind: m.PlotPie, Name: name, Values: values}, opts)
}

// Show dispatches a payload by its kind. Value payloads are appended to the
// history one value at a time; a value payload without values is an error.
func (l *PlotLogger) Show(p m.Payload, opts ...ShowOption) ([]m.Path, error) {
	switch p.Kind {
	case m.PlotValue:
		if len(p.Values) == 0 {
			return nil, fmt.Errorf("render %s %q: %w", p.Kind, p.Name, adapter.ErrEmptyPayload)
		}

		var saved []m.Path

		for _, v := range p.Values {
			path, err := l.ShowValue(v, p.Name, opts...)
			if err != nil {
				return saved, err
			}

			saved = append(saved, path)
		}

		return saved, nil
	case m.PlotImage:
		path, err := l.show(l.imgDir, p, opts)
		if err != nil {
			return nil, err
		}

		return []m.Path{path}, nil
	default:
		path, err := l.show(l.plotDir, p, opts)
		if err != nil {
			return nil, err
		}

		return []m.Path{path}, nil
	}
}

func (l *PlotLogger) show(dir string, p m.Payload, opts []ShowOption) (m.Path, error) {
	cfg := showConfig{format: DefaultFormat}
	for _, opt := range opts {
		opt(&cfg)
	}

	figure, err := l.renderer.Render(p, p.Kind)
	if err != nil {
		return "", fmt.Errorf("render %s %q: %w", p.Kind, p.Name, err)
	}

	path := filepath.Join(dir, p.Name) + cfg.format
	if err := figure.SaveTo(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}

	return m.Path(path), nil
}
