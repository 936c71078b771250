package adapter

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	m "github.com/mouse-blink/vislog/internal/model"
)

const (
	defaultWidth  = 800
	defaultHeight = 600

	// images smaller than this on their long side are upscaled
	minImageSide = 256
	titleBand    = 20
)

// ChartRenderer draws payloads with go-chart; images are drawn directly.
type ChartRenderer struct {
	width  int
	height int
}

// NewChartRenderer constructs a ChartRenderer producing width x height
// charts. Non-positive sizes fall back to 800x600.
func NewChartRenderer(width, height int) *ChartRenderer {
	if width <= 0 {
		width = defaultWidth
	}

	if height <= 0 {
		height = defaultHeight
	}

	return &ChartRenderer{width: width, height: height}
}

// Render implements Renderer.
func (r *ChartRenderer) Render(p m.Payload, kind m.PlotKind) (Figure, error) {
	switch kind {
	case m.PlotImage:
		return r.renderImage(p)
	case m.PlotValue:
		return r.renderValue(p)
	case m.PlotBar:
		return r.renderBar(p)
	case m.PlotLine:
		return r.renderSeries(p, chart.Style{StrokeWidth: 2})
	case m.PlotScatter:
		return r.renderSeries(p, chart.Style{StrokeWidth: chart.Disabled, DotWidth: 4})
	case m.PlotPie:
		return r.renderPie(p)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func (r *ChartRenderer) renderSeries(p m.Payload, style chart.Style) (Figure, error) {
	if len(p.X) == 0 && len(p.Y) == 0 {
		return nil, ErrEmptyPayload
	}

	if len(p.X) != len(p.Y) {
		return nil, fmt.Errorf("%w: x has %d values, y has %d", ErrSeriesMismatch, len(p.X), len(p.Y))
	}

	c := chart.Chart{
		Title:  p.Name,
		Width:  r.width,
		Height: r.height,
		XAxis:  chart.XAxis{Range: flatRange(p.X)},
		YAxis:  chart.YAxis{Range: flatRange(p.Y)},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: p.Name, XValues: p.X, YValues: p.Y, Style: style},
		},
	}

	return &chartFigure{chart: c}, nil
}

// renderValue draws a value history against its step index.
func (r *ChartRenderer) renderValue(p m.Payload) (Figure, error) {
	if len(p.Values) == 0 {
		return nil, ErrEmptyPayload
	}

	ys := p.Values
	xs := make([]float64, len(ys))

	for i := range ys {
		xs[i] = float64(i)
	}

	// go-chart needs a non-zero x range
	if len(ys) == 1 {
		xs = []float64{0, 1}
		ys = []float64{ys[0], ys[0]}
	}

	return r.renderSeries(m.Payload{Name: p.Name, X: xs, Y: ys}, chart.Style{StrokeWidth: 2, DotWidth: 3})
}

func (r *ChartRenderer) renderBar(p m.Payload) (Figure, error) {
	values, err := chartValues(p)
	if err != nil {
		return nil, err
	}

	barWidth := max(4, r.width/(2*len(values)+1))

	c := chart.BarChart{
		Title:      p.Name,
		Width:      r.width,
		Height:     r.height,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		YAxis:      chart.YAxis{Range: barRange(p.Values)},
		Bars:       values,
	}

	return &chartFigure{chart: c}, nil
}

func (r *ChartRenderer) renderPie(p m.Payload) (Figure, error) {
	values, err := chartValues(p)
	if err != nil {
		return nil, err
	}

	c := chart.PieChart{
		Title:  p.Name,
		Width:  r.width,
		Height: r.height,
		Values: values,
	}

	return &chartFigure{chart: c}, nil
}

func (r *ChartRenderer) renderImage(p m.Payload) (Figure, error) {
	gray, err := grayImage(p.Image)
	if err != nil {
		return nil, err
	}

	bounds := gray.Bounds()
	scale := max(1, minImageSide/max(bounds.Dx(), bounds.Dy()))
	w, h := bounds.Dx()*scale, bounds.Dy()*scale

	canvas := image.NewRGBA(image.Rect(0, 0, max(w, titleWidth(p.Name)), h+titleBand))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.NearestNeighbor.Scale(canvas, image.Rect(0, titleBand, w, h+titleBand), gray, bounds, draw.Src, nil)
	drawTitle(canvas, p.Name)

	return &imageFigure{img: canvas}, nil
}

func chartValues(p m.Payload) ([]chart.Value, error) {
	if len(p.Values) == 0 {
		return nil, ErrEmptyPayload
	}

	if p.Labels != nil && len(p.Labels) != len(p.Values) {
		return nil, fmt.Errorf("%w: %d labels for %d values", ErrSeriesMismatch, len(p.Labels), len(p.Values))
	}

	values := make([]chart.Value, len(p.Values))
	for i, v := range p.Values {
		label := fmt.Sprintf("%d", i)
		if p.Labels != nil {
			label = p.Labels[i]
		}

		values[i] = chart.Value{Value: v, Label: label}
	}

	return values, nil
}

// flatRange returns an explicit axis range when all values are equal, since
// go-chart cannot scale a zero-width range.
func flatRange(ys []float64) chart.Range {
	if len(ys) == 0 {
		return nil
	}

	lo, hi := ys[0], ys[0]
	for _, y := range ys[1:] {
		lo = math.Min(lo, y)
		hi = math.Max(hi, y)
	}

	if lo != hi {
		return nil
	}

	return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
}

// barRange spans the bars and the zero baseline, at least one unit tall.
func barRange(values []float64) chart.Range {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	return &chart.ContinuousRange{Min: lo, Max: math.Max(hi, lo+1)}
}

// grayImage maps a row-major matrix onto 8-bit gray, scaling min..max to 0..255.
func grayImage(rows [][]float64) (*image.Gray, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyPayload
	}

	width := len(rows[0])
	lo, hi := math.Inf(1), math.Inf(-1)

	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrSeriesMismatch, i, len(row), width)
		}

		for _, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}

	img := image.NewGray(image.Rect(0, 0, width, len(rows)))

	for y, row := range rows {
		for x, v := range row {
			var level uint8
			if hi > lo {
				level = uint8(math.Round((v - lo) / (hi - lo) * 255))
			}

			img.SetGray(x, y, color.Gray{Y: level})
		}
	}

	return img, nil
}

func titleWidth(title string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}

	return d.MeasureString(title).Ceil() + 8
}

func drawTitle(dst draw.Image, title string) {
	if title == "" {
		return
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(4), Y: fixed.I(titleBand - 5)},
	}
	d.DrawString(title)
}
