package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/benmeehan/climate-search/internal/constants"
	"github.com/benmeehan/climate-search/internal/utils"
	"github.com/benmeehan/climate-search/pkg/page"
	"github.com/rs/zerolog"
)

var (
	ErrMissingGraph  = errors.New("render: indicator has no graph element")
	ErrInvalidSeries = errors.New("render: invalid chart series")
)

// ChartSpec is one indicator's time series.
type ChartSpec struct {
	IndicatorID string
	X           []float64
	Y           []float64
	Units       string
}

// Outcome is the result of rendering one indicator.
type Outcome struct {
	IndicatorID string
	Chart       *ChartSpec
	Err         error

	graph *goquery.Selection
}

// Charted reports whether a chart was produced for the indicator.
func (o Outcome) Charted() bool {
	return o.Err == nil && o.Chart != nil
}

// Charter turns a ChartSpec into chart markup.
type Charter interface {
	Chart(spec ChartSpec) (string, error)
}

// AssetProvider is implemented by charters whose markup needs shared scripts
// loaded before any chart runs.
type AssetProvider interface {
	Assets() []string
}

// ParseIndicators extracts the chart data of every indicator under root. A
// broken indicator only affects its own Outcome.
func ParseIndicators(root *goquery.Selection) []Outcome {
	var outcomes []Outcome

	root.Find(constants.IndicatorSelector).Each(func(_ int, indicator *goquery.Selection) {
		outcome := Outcome{IndicatorID: indicator.AttrOr("id", "")}

		graph := indicator.Find(constants.GraphSelector).First()
		if graph.Length() == 0 {
			outcome.Err = ErrMissingGraph
			outcomes = append(outcomes, outcome)
			return
		}

		outcome.graph = graph
		outcome.Chart, outcome.Err = parseChartSpec(outcome.IndicatorID, graph)
		outcomes = append(outcomes, outcome)
	})

	return outcomes
}

// ParseFragment parses an HTML fragment and extracts its indicators.
func ParseFragment(fragment string) ([]Outcome, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("render: failed to parse fragment: %w", err)
	}
	return ParseIndicators(doc.Selection), nil
}

func parseChartSpec(id string, graph *goquery.Selection) (*ChartSpec, error) {
	x, err := parseSeries(graph, constants.GraphXAttr)
	if err != nil {
		return nil, err
	}
	y, err := parseSeries(graph, constants.GraphYAttr)
	if err != nil {
		return nil, err
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d x values, %d y values", ErrInvalidSeries, len(x), len(y))
	}

	return &ChartSpec{
		IndicatorID: id,
		X:           x,
		Y:           y,
		Units:       graph.AttrOr(constants.GraphUnitsAttr, ""),
	}, nil
}

func parseSeries(graph *goquery.Selection, attr string) ([]float64, error) {
	raw, ok := graph.Attr(attr)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidSeries, attr)
	}

	var values []float64
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSeries, attr, err)
	}
	return values, nil
}

// Renderer injects backend fragments into a page and draws their charts.
type Renderer struct {
	charter Charter
	workers int
	logger  zerolog.Logger
}

// NewRenderer creates a Renderer drawing up to workers charts at a time.
func NewRenderer(charter Charter, workers int, logger zerolog.Logger) *Renderer {
	return &Renderer{
		charter: charter,
		workers: workers,
		logger:  logger,
	}
}

// Render replaces the page's results with fragment and draws a chart into
// every indicator's graph element. It never fails as a whole: each indicator
// reports its own Outcome.
func (r *Renderer) Render(p *page.Page, fragment string) []Outcome {
	results := p.SetResults(fragment)
	outcomes := ParseIndicators(results)
	markup := make([]string, len(outcomes))

	pool := utils.NewWorkerPool(r.workers, func(id string, recovered any) {
		i, _ := strconv.Atoi(id)
		outcomes[i].Err = fmt.Errorf("render: chart panicked: %v", recovered)
	})

	for i := range outcomes {
		if outcomes[i].Err != nil {
			continue
		}
		spec := *outcomes[i].Chart
		pool.Submit(strconv.Itoa(i), func() {
			chart, err := r.charter.Chart(spec)
			if err != nil {
				outcomes[i].Err = fmt.Errorf("render: chart failed: %w", err)
				return
			}
			markup[i] = chart
		})
	}
	pool.Shutdown()

	charted := 0
	for i := range outcomes {
		outcome := &outcomes[i]
		switch {
		case errors.Is(outcome.Err, ErrMissingGraph):
			r.logger.Error().Msgf("Could not find a graph element for %s", outcome.IndicatorID)
		case outcome.Err != nil:
			r.logger.Error().
				Err(outcome.Err).
				Msgf("Could not render indicator %s", outcome.IndicatorID)
		default:
			outcome.graph.SetHtml(markup[i])
			charted++
		}
		outcome.graph = nil
	}

	if charted > 0 {
		r.injectAssets(results)
	}

	r.logger.Info().
		Int("indicators", len(outcomes)).
		Int("charted", charted).
		Msg("Results rendered")

	return outcomes
}

// injectAssets loads the charter's scripts once, ahead of every chart in results.
func (r *Renderer) injectAssets(results *goquery.Selection) {
	provider, ok := r.charter.(AssetProvider)
	if !ok {
		return
	}

	var tags strings.Builder
	for _, src := range provider.Assets() {
		fmt.Fprintf(&tags, `<script type="text/javascript" src="%s"></script>`, html.EscapeString(src))
	}
	results.PrependHtml(tags.String())
}
