package page

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const formPage = `<html><body>
<form id="search-form" action=" /search ">
  <input id="name" name="name" value="Philadelphia">
  <input type="hidden" name="scenario" value="RCP85">
  <input type="checkbox" name="historic" value="yes" checked>
  <input type="checkbox" name="unchecked" value="yes">
  <input type="radio" name="units" value="metric">
  <input type="radio" name="units" value="imperial" checked>
  <input type="text" name="disabled" value="x" disabled>
  <input type="submit" name="go" value="Search">
  <select name="indicator">
    <option value="total_precipitation">Precipitation</option>
    <option value="max_temperature" selected>Max temperature</option>
  </select>
  <textarea name="notes">near the river</textarea>
</form>
<div id="results"><p>old</p></div>
</body></html>`

func TestLoad_DefaultTemplate(t *testing.T) {
	p, err := LoadDefault()
	require.NoError(t, err)

	action, err := p.Action()
	require.NoError(t, err)
	assert.Equal(t, "/search", action)
	assert.Equal(t, "", p.InputValue())
}

func TestLoad_MissingElement(t *testing.T) {
	_, err := Load(strings.NewReader(`<html><body><form id="search-form"></form></body></html>`), DefaultSelectors)
	assert.Error(t, err)
}

func TestPage_FormValues(t *testing.T) {
	p, err := Load(strings.NewReader(formPage), Selectors{})
	require.NoError(t, err)

	expected := url.Values{
		"name":      {"Philadelphia"},
		"scenario":  {"RCP85"},
		"historic":  {"yes"},
		"units":     {"imperial"},
		"indicator": {"max_temperature"},
		"notes":     {"near the river"},
	}
	assert.Equal(t, expected, p.FormValues())

	action, err := p.Action()
	require.NoError(t, err)
	assert.Equal(t, "/search", action)
}

func TestPage_SetInputValue(t *testing.T) {
	p, err := Load(strings.NewReader(formPage), Selectors{})
	require.NoError(t, err)
	assert.Equal(t, "Philadelphia", p.InputValue())

	p.SetInputValue("")

	assert.Equal(t, "", p.InputValue())
	assert.Equal(t, []string{""}, p.FormValues()["name"])
}

func TestPage_SetResults(t *testing.T) {
	p, err := Load(strings.NewReader(formPage), Selectors{})
	require.NoError(t, err)

	results := p.SetResults(`<div class="indicator" id="precip"><div class="graph"></div></div>`)

	assert.Equal(t, 1, results.Find(".indicator").Length())
	inner, err := p.ResultsHTML()
	require.NoError(t, err)
	assert.NotContains(t, inner, "old")
	assert.Contains(t, inner, `id="precip"`)

	doc, err := p.HTML()
	require.NoError(t, err)
	assert.Contains(t, doc, `<div id="results"><div class="indicator" id="precip">`)
}
