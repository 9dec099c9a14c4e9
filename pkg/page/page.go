package page

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTemplate is the search page served to users: a form with the place
// input and an empty results container.
//
//go:embed templates/index.html
var DefaultTemplate string

// Selectors locate the parts of the page the pipeline works with.
type Selectors struct {
	Form    string `yaml:"form"`
	Input   string `yaml:"input"`
	Results string `yaml:"results"`
}

// DefaultSelectors matches DefaultTemplate.
var DefaultSelectors = Selectors{
	Form:    "#search-form",
	Input:   "#name",
	Results: "#results",
}

// Page is an in-memory HTML document holding the search form and the results container.
type Page struct {
	mu  sync.Mutex
	doc *goquery.Document
	sel Selectors
}

// Load parses an HTML document. Empty selector fields fall back to DefaultSelectors.
func Load(r io.Reader, sel Selectors) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("page: failed to parse document: %w", err)
	}

	if sel.Form == "" {
		sel.Form = DefaultSelectors.Form
	}
	if sel.Input == "" {
		sel.Input = DefaultSelectors.Input
	}
	if sel.Results == "" {
		sel.Results = DefaultSelectors.Results
	}

	p := &Page{doc: doc, sel: sel}
	for name, s := range map[string]string{"form": sel.Form, "input": sel.Input, "results": sel.Results} {
		if doc.Find(s).Length() == 0 {
			return nil, fmt.Errorf("page: no %s element matches %q", name, s)
		}
	}

	return p, nil
}

// LoadDefault parses DefaultTemplate.
func LoadDefault() (*Page, error) {
	return Load(strings.NewReader(DefaultTemplate), DefaultSelectors)
}

// Action returns the form's target URL as written in the markup.
func (p *Page) Action() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	action, ok := p.doc.Find(p.sel.Form).First().Attr("action")
	if !ok || strings.TrimSpace(action) == "" {
		return "", errors.New("page: form has no action")
	}
	return strings.TrimSpace(action), nil
}

// FormValues collects the successful controls of the form, the way a browser
// builds form data.
func (p *Page) FormValues() url.Values {
	p.mu.Lock()
	defer p.mu.Unlock()

	values := url.Values{}
	p.doc.Find(p.sel.Form).First().Find("input, select, textarea").Each(func(_ int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok || name == "" {
			return
		}
		if _, disabled := s.Attr("disabled"); disabled {
			return
		}

		switch goquery.NodeName(s) {
		case "input":
			inputType := strings.ToLower(s.AttrOr("type", "text"))
			switch inputType {
			case "submit", "button", "reset", "image", "file":
				return
			case "checkbox", "radio":
				if _, checked := s.Attr("checked"); !checked {
					return
				}
				values.Add(name, s.AttrOr("value", "on"))
				return
			}
			values.Add(name, s.AttrOr("value", ""))
		case "textarea":
			values.Add(name, s.Text())
		case "select":
			option := s.Find("option[selected]").First()
			if option.Length() == 0 {
				option = s.Find("option").First()
			}
			if option.Length() == 0 {
				return
			}
			values.Add(name, option.AttrOr("value", strings.TrimSpace(option.Text())))
		}
	})

	return values
}

// InputValue returns the current text of the place input.
func (p *Page) InputValue() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.Find(p.sel.Input).First().AttrOr("value", "")
}

// SetInputValue replaces the text of the place input.
func (p *Page) SetInputValue(value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.doc.Find(p.sel.Input).First().SetAttr("value", value)
}

// SetResults replaces the contents of the results container with fragment,
// verbatim, and returns the container.
func (p *Page) SetResults(fragment string) *goquery.Selection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.Find(p.sel.Results).First().SetHtml(fragment)
}

// Results returns the results container.
func (p *Page) Results() *goquery.Selection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.Find(p.sel.Results).First()
}

// ResultsHTML returns the inner HTML of the results container.
func (p *Page) ResultsHTML() (string, error) {
	return p.Results().Html()
}

// HTML renders the whole document.
func (p *Page) HTML() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return goquery.OuterHtml(p.doc.Selection)
}
