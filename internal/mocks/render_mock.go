package mocks

import (
	"github.com/benmeehan/climate-search/internal/render"
	"github.com/benmeehan/climate-search/pkg/page"
	"github.com/stretchr/testify/mock"
)

// MockCharter is a mock implementation of the render.Charter interface
type MockCharter struct {
	mock.Mock
}

func (m *MockCharter) Chart(spec render.ChartSpec) (string, error) {
	args := m.Called(spec)
	return args.String(0), args.Error(1)
}

// MockResultRenderer is a mock implementation of the services.ResultRenderer interface
type MockResultRenderer struct {
	mock.Mock
}

func (m *MockResultRenderer) Render(p *page.Page, fragment string) []render.Outcome {
	args := m.Called(p, fragment)
	if outcomes := args.Get(0); outcomes != nil {
		return outcomes.([]render.Outcome)
	}
	return nil
}
