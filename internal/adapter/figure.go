package adapter

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

type chartRenderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// chartFigure is a go-chart chart waiting to be rendered.
type chartFigure struct {
	chart chartRenderable
}

// SaveTo renders the chart in the format implied by the extension of path.
func (f *chartFigure) SaveTo(path string) error {
	ext := formatOf(path)

	var buf bytes.Buffer

	switch ext {
	case ".svg":
		if err := f.chart.Render(chart.SVG, &buf); err != nil {
			return err
		}
	case ".png":
		if err := f.chart.Render(chart.PNG, &buf); err != nil {
			return err
		}
	default:
		if !rasterFormat(ext) {
			return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
		}

		var raw bytes.Buffer
		if err := f.chart.Render(chart.PNG, &raw); err != nil {
			return err
		}

		img, err := png.Decode(&raw)
		if err != nil {
			return err
		}

		if err := encodeRaster(&buf, ext, img); err != nil {
			return err
		}
	}

	return writeFigure(path, buf.Bytes())
}

// imageFigure is an already rasterized figure.
type imageFigure struct {
	img image.Image
}

// SaveTo encodes the image in the format implied by the extension of path.
// SVG output embeds a PNG.
func (f *imageFigure) SaveTo(path string) error {
	ext := formatOf(path)

	var buf bytes.Buffer

	switch {
	case ext == ".svg":
		if err := encodeSVG(&buf, f.img); err != nil {
			return err
		}
	case rasterFormat(ext):
		if err := encodeRaster(&buf, ext, f.img); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	return writeFigure(path, buf.Bytes())
}

func formatOf(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func rasterFormat(ext string) bool {
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff":
		return true
	default:
		return false
	}
}

func encodeRaster(w io.Writer, ext string, img image.Image) error {
	switch ext {
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case ".gif":
		return gif.Encode(w, img, nil)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func encodeSVG(w io.Writer, img image.Image) error {
	var raw bytes.Buffer
	if err := png.Encode(&raw, img); err != nil {
		return err
	}

	b := img.Bounds()

	_, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"><image width="%d" height="%d" href="data:image/png;base64,%s"/></svg>`,
		b.Dx(), b.Dy(), b.Dx(), b.Dy(), base64.StdEncoding.EncodeToString(raw.Bytes()))

	return err
}

// writeFigure replaces path with data. The directory must already exist.
func writeFigure(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
