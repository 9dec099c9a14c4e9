package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockObjectStorage is a mock implementation of the s3.ObjectStorageClient interface
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Connect(ctx context.Context, endpoint, accessKeyID, secretAccessKey string, useSSL bool) error {
	args := m.Called(ctx, endpoint, accessKeyID, secretAccessKey, useSSL)
	return args.Error(0)
}

func (m *MockObjectStorage) Upload(ctx context.Context, bucketName, objectName string, content io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, bucketName, objectName, content, size, contentType)
	return args.String(0), args.Error(1)
}
