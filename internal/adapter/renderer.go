package adapter

import (
	"errors"

	m "github.com/mouse-blink/vislog/internal/model"
)

// Rendering errors.
var (
	ErrEmptyPayload      = errors.New("empty payload")
	ErrSeriesMismatch    = errors.New("series lengths do not match")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrUnknownKind       = errors.New("unknown plot kind")
)

// Figure is a rendered artifact that can be written to disk. The encoding is
// chosen from the extension of path.
type Figure interface {
	SaveTo(path string) error
}

// Renderer turns a payload into a Figure.
type Renderer interface {
	Render(p m.Payload, kind m.PlotKind) (Figure, error)
}
