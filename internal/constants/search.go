package constants

import "time"

const (
	// LocationField is the form field carrying the resolved coordinate as JSON.
	LocationField = "location"

	// DefaultCountry restricts place predictions when the config does not say otherwise.
	DefaultCountry = "us"

	// DefaultMapsTimeout bounds each predictions or details request.
	DefaultMapsTimeout = 10 * time.Second

	// DefaultSubmitTimeout bounds the POST to the backend.
	DefaultSubmitTimeout = 30 * time.Second

	// DefaultRenderWorkers is the number of charts drawn concurrently.
	DefaultRenderWorkers = 4
)

// Chart indicator markup contract
const (
	// IndicatorSelector matches one renderable time-series metric.
	IndicatorSelector = ".indicator"
	// GraphSelector matches the chart placeholder nested in an indicator.
	GraphSelector = ".graph"

	GraphXAttr     = "data-x"
	GraphYAttr     = "data-y"
	GraphUnitsAttr = "data-units"

	// XAxisTitle is the title of every chart's horizontal axis.
	XAxisTitle = "year"
)
