package model

// PlotKind identifies how a payload is drawn.
type PlotKind string

// Available PlotKind values.
const (
	PlotImage   PlotKind = "image"
	PlotValue   PlotKind = "value"
	PlotBar     PlotKind = "bar"
	PlotLine    PlotKind = "line"
	PlotScatter PlotKind = "scatter"
	PlotPie     PlotKind = "pie"
)

// Payload is the numeric data handed to a renderer.
type Payload struct {
	Kind PlotKind
	Name string

	// Image holds row-major pixel intensities for PlotImage.
	Image [][]float64
	// Values holds bar heights, pie slices or a value history.
	Values []float64
	// X and Y hold paired series for line and scatter plots.
	X []float64
	Y []float64
	// Labels optionally name bars and pie slices.
	Labels []string
}
