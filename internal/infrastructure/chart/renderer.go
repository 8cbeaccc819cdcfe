package chart

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"ecommerce_dataset/internal/domain/report"
)

var ErrNoData = errors.New("chart has no data points")

const (
	width  = 1400
	height = 800
)

// Renderer writes PNG charts with go-chart.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Line draws the points in order, annotating each with its value.
func (r *Renderer) Line(path string, spec report.ChartSpec) error {
	if len(spec.Points) == 0 {
		return fmt.Errorf("%s: %w", spec.Title, ErrNoData)
	}

	xs := make([]float64, len(spec.Points))
	ys := make([]float64, len(spec.Points))
	ticks := make([]gochart.Tick, len(spec.Points))
	notes := make([]gochart.Value2, len(spec.Points))
	for i, p := range spec.Points {
		xs[i] = float64(i)
		ys[i] = p.Value
		ticks[i] = gochart.Tick{Value: float64(i), Label: p.Label}
		notes[i] = gochart.Value2{XValue: float64(i), YValue: p.Value, Label: FormatValue(p.Value, spec.Money)}
	}

	graph := gochart.Chart{
		Title:  spec.Title,
		Width:  width,
		Height: height,
		XAxis: gochart.XAxis{
			Name:  spec.XLabel,
			Ticks: ticks,
			Range: &gochart.ContinuousRange{Min: -0.5, Max: float64(len(xs)) - 0.5},
		},
		YAxis: gochart.YAxis{
			Name:  spec.YLabel,
			Range: valueRange(spec.Points),
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    spec.Title,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: drawing.ColorFromHex("2E86AB"),
					StrokeWidth: 2.5,
					DotWidth:    5,
					DotColor:    drawing.ColorFromHex("2E86AB"),
				},
			},
			gochart.AnnotationSeries{Annotations: notes},
		},
	}

	return write(path, func(f *os.File) error { return graph.Render(gochart.PNG, f) })
}

// Bar draws one bar per point, labelled with its value.
func (r *Renderer) Bar(path string, spec report.ChartSpec) error {
	if len(spec.Points) == 0 {
		return fmt.Errorf("%s: %w", spec.Title, ErrNoData)
	}

	bars := make([]gochart.Value, len(spec.Points))
	for i, p := range spec.Points {
		bars[i] = gochart.Value{
			Value: p.Value,
			Label: fmt.Sprintf("%s (%s)", p.Label, FormatValue(p.Value, spec.Money)),
		}
	}

	graph := gochart.BarChart{
		Title:    spec.Title,
		Width:    width,
		Height:   height,
		BarWidth: barWidth(len(bars)),
		Background: gochart.Style{
			Padding: gochart.Box{Top: 60, Bottom: 40},
		},
		YAxis: gochart.YAxis{
			Name:  spec.YLabel,
			Range: valueRange(spec.Points),
		},
		Bars: bars,
	}

	return write(path, func(f *os.File) error { return graph.Render(gochart.PNG, f) })
}

// Pie draws each point as a slice labelled with its share of the total.
func (r *Renderer) Pie(path string, spec report.ChartSpec) error {
	total := 0.0
	for _, p := range spec.Points {
		total += p.Value
	}
	if len(spec.Points) == 0 || total <= 0 {
		return fmt.Errorf("%s: %w", spec.Title, ErrNoData)
	}

	values := make([]gochart.Value, len(spec.Points))
	for i, p := range spec.Points {
		values[i] = gochart.Value{
			Value: p.Value,
			Label: fmt.Sprintf("%s %.1f%%", p.Label, p.Value/total*100),
		}
	}

	graph := gochart.PieChart{
		Title:  spec.Title,
		Width:  height,
		Height: height,
		Values: values,
	}

	return write(path, func(f *os.File) error { return graph.Render(gochart.PNG, f) })
}

// FormatValue renders v as "$12,345" for money and "12" otherwise.
func FormatValue(v float64, money bool) string {
	s := humanize.Comma(int64(math.Round(v)))
	if money {
		return "$" + s
	}
	return s
}

func valueRange(points []report.Point) *gochart.ContinuousRange {
	top := 0.0
	for _, p := range points {
		top = math.Max(top, p.Value)
	}
	if top == 0 {
		top = 1
	}
	return &gochart.ContinuousRange{Min: 0, Max: top * 1.1}
}

func barWidth(n int) int {
	w := (width - 200) / max(n, 1) * 2 / 3
	return min(max(w, 10), 120)
}

func write(path string, render func(*os.File) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := render(f); err != nil {
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	return nil
}
