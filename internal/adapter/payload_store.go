package adapter

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/vislog/internal/model"
)

// PayloadStore loads plot payloads from data files.
type PayloadStore interface {
	LoadPayloads(path m.Path) ([]m.Payload, error)
}

type payloadYAML struct {
	Kind   string       `yaml:"kind"`
	Name   string       `yaml:"name"`
	Image  [][]float64  `yaml:"image,omitempty"`
	Values []float64    `yaml:"values,omitempty"`
	Value  *float64     `yaml:"value,omitempty"`
	X      []float64    `yaml:"x,omitempty"`
	Y      []float64    `yaml:"y,omitempty"`
	Points [][2]float64 `yaml:"points,omitempty"`
	Labels []string     `yaml:"labels,omitempty"`
}

// LocalPayloadStore reads payloads from multi-document YAML files.
type LocalPayloadStore struct{}

// NewPayloadStore constructs a PayloadStore implementation.
func NewPayloadStore() PayloadStore {
	return &LocalPayloadStore{}
}

// LoadPayloads decodes every YAML document in the file into a payload.
// Scatter points are split into the X and Y series.
func (s *LocalPayloadStore) LoadPayloads(path m.Path) ([]m.Payload, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return nil, err
	}

	defer func() { _ = f.Close() }()

	var payloads []m.Payload

	dec := yaml.NewDecoder(f)

	for {
		var raw payloadYAML

		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}

		p, err := raw.payload()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		payloads = append(payloads, p)
	}

	return payloads, nil
}

func (raw payloadYAML) payload() (m.Payload, error) {
	if raw.Name == "" {
		return m.Payload{}, fmt.Errorf("payload without name")
	}

	p := m.Payload{
		Kind:   m.PlotKind(raw.Kind),
		Name:   raw.Name,
		Image:  raw.Image,
		Values: raw.Values,
		X:      raw.X,
		Y:      raw.Y,
		Labels: raw.Labels,
	}

	switch p.Kind {
	case m.PlotImage, m.PlotBar, m.PlotLine, m.PlotPie:
	case m.PlotValue:
		if raw.Value != nil {
			p.Values = append(p.Values, *raw.Value)
		}
	case m.PlotScatter:
		for _, pt := range raw.Points {
			p.X = append(p.X, pt[0])
			p.Y = append(p.Y, pt[1])
		}
	default:
		return m.Payload{}, fmt.Errorf("%w: %q", ErrUnknownKind, raw.Kind)
	}

	return p, nil
}
