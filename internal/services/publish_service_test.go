package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/benmeehan/climate-search/internal/mocks"
	"github.com/benmeehan/climate-search/internal/models"
	"github.com/benmeehan/climate-search/internal/services"
	"github.com/benmeehan/climate-search/pkg/geo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var publishedResult = &models.SearchResult{
	Input:    "San Francisco",
	Location: geo.GeoPoint{Lat: 37.7749, Lng: -122.4194},
	URL:      "/?lat=37.774900&lng=-122.419400",
}

func TestObjectName(t *testing.T) {
	point := geo.GeoPoint{Lat: 37.7749, Lng: -122.4194}

	assert.Equal(t, "results/37.774900_-122.419400.html", services.ObjectName("results", point))
	assert.Equal(t, "37.774900_-122.419400.html", services.ObjectName("", point))
}

// TestPublishService_Publish_LocalAndUpload tests that the page is written and uploaded.
func TestPublishService_Publish_LocalAndUpload(t *testing.T) {
	// Setup
	fileClient := new(mocks.MockFileOperations)
	storage := new(mocks.MockObjectStorage)
	html := "<html><body>charts</body></html>"

	fileClient.On("WriteFileRaw", "out/result.html", []byte(html)).Return(nil).Once()
	storage.On("Upload", mock.Anything, "climate", "results/37.774900_-122.419400.html",
		mock.Anything, int64(len(html)), "text/html; charset=utf-8").
		Return("https://s3.example.com/climate/results/37.774900_-122.419400.html?sig=1", nil).Once()

	service := services.NewPublishService("out/result.html", "climate", "results", fileClient, storage, zerolog.Nop())

	// Execute
	published, err := service.Publish(context.Background(), publishedResult, html)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "out/result.html", published.File)
	assert.Equal(t, "results/37.774900_-122.419400.html", published.ObjectName)
	assert.Contains(t, published.PresignedURL, "sig=1")
	assert.Equal(t, int64(len(html)), published.Size)
	fileClient.AssertExpectations(t)
	storage.AssertExpectations(t)
}

// TestPublishService_Publish_LocalOnly tests that a nil storage skips the upload.
func TestPublishService_Publish_LocalOnly(t *testing.T) {
	fileClient := new(mocks.MockFileOperations)
	fileClient.On("WriteFileRaw", "result.html", mock.Anything).Return(nil).Once()

	service := services.NewPublishService("result.html", "", "", fileClient, nil, zerolog.Nop())
	published, err := service.Publish(context.Background(), publishedResult, "<html></html>")

	require.NoError(t, err)
	assert.Equal(t, "result.html", published.File)
	assert.Empty(t, published.ObjectName)
	assert.Empty(t, published.PresignedURL)
}

// TestPublishService_Publish_WriteFailure tests that a failed write stops before uploading.
func TestPublishService_Publish_WriteFailure(t *testing.T) {
	fileClient := new(mocks.MockFileOperations)
	storage := new(mocks.MockObjectStorage)
	fileClient.On("WriteFileRaw", "result.html", mock.Anything).Return(errors.New("disk full")).Once()

	service := services.NewPublishService("result.html", "climate", "", fileClient, storage, zerolog.Nop())
	published, err := service.Publish(context.Background(), publishedResult, "<html></html>")

	assert.Nil(t, published)
	assert.ErrorContains(t, err, "disk full")
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestPublishService_Publish_UploadFailure tests that upload errors are returned.
func TestPublishService_Publish_UploadFailure(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, "climate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("access denied")).Once()

	service := services.NewPublishService("", "climate", "", new(mocks.MockFileOperations), storage, zerolog.Nop())
	published, err := service.Publish(context.Background(), publishedResult, "<html></html>")

	assert.Nil(t, published)
	assert.ErrorContains(t, err, "access denied")
}

func TestPublishService_Publish_NilResult(t *testing.T) {
	service := services.NewPublishService("", "", "", new(mocks.MockFileOperations), nil, zerolog.Nop())

	_, err := service.Publish(context.Background(), nil, "")

	assert.Error(t, err)
}
