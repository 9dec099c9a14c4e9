package render

import (
	"fmt"

	"github.com/benmeehan/climate-search/internal/constants"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// DefaultAssetsHost serves the echarts library script.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// ECharts draws indicators as ECharts line charts. Line series show their
// data-point markers by default, and the chart width follows its container.
type ECharts struct {
	height     string
	assetsHost string
}

// NewECharts creates an ECharts charter; height is a CSS length, e.g. "400px".
func NewECharts(height string) *ECharts {
	if height == "" {
		height = "400px"
	}
	return &ECharts{height: height, assetsHost: DefaultAssetsHost}
}

// Assets lists the scripts every chart snippet depends on. They belong on the
// page once, not once per chart.
func (e *ECharts) Assets() []string {
	return []string{e.assetsHost + opts.EchartsJS}
}

// Chart renders spec to an element plus its init script, ready to embed in
// an existing page.
func (e *ECharts) Chart(spec ChartSpec) (string, error) {
	if len(spec.X) != len(spec.Y) {
		return "", fmt.Errorf("%w: %s has %d x values and %d y values", ErrInvalidSeries, spec.IndicatorID, len(spec.X), len(spec.Y))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:      "100%",
			Height:     e.height,
			AssetsHost: e.assetsHost,
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: constants.XAxisTitle}),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.Units}),
	)

	data := make([]opts.LineData, 0, len(spec.Y))
	for _, y := range spec.Y {
		data = append(data, opts.LineData{Value: y})
	}
	line.SetXAxis(spec.X).AddSeries(spec.IndicatorID, data)

	snippet := line.RenderSnippet()
	return snippet.Element + "\n" + snippet.Script, nil
}
