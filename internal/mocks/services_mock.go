package mocks

import (
	"context"
	"net/url"

	"github.com/benmeehan/climate-search/internal/models"
	"github.com/benmeehan/climate-search/pkg/geo"
	"github.com/benmeehan/climate-search/pkg/places"
	"github.com/stretchr/testify/mock"
)

// MockLocationResolver is a mock implementation of the services.LocationResolver interface
type MockLocationResolver struct {
	mock.Mock
}

func (m *MockLocationResolver) Resolve(ctx context.Context, input string) (places.ResolvedLocation, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(places.ResolvedLocation), args.Error(1)
}

func (m *MockLocationResolver) Reset() {
	m.Called()
}

// MockFormSubmitter is a mock implementation of the services.FormSubmitter interface
type MockFormSubmitter struct {
	mock.Mock
}

func (m *MockFormSubmitter) Submit(ctx context.Context, action string, values url.Values) (string, error) {
	args := m.Called(ctx, action, values)
	return args.String(0), args.Error(1)
}

// MockHistoryManager is a mock implementation of the services.HistoryManager interface
type MockHistoryManager struct {
	mock.Mock
}

func (m *MockHistoryManager) PushState(c geo.Coordinates) (models.HistoryEntry, error) {
	args := m.Called(c)
	return args.Get(0).(models.HistoryEntry), args.Error(1)
}
