package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/benmeehan/climate-search/internal/models"
	"github.com/benmeehan/climate-search/pkg/file"
	"github.com/benmeehan/climate-search/pkg/geo"
	"github.com/benmeehan/climate-search/pkg/s3"
	"github.com/rs/zerolog"
)

// PublishService writes rendered result pages to a local file and, when
// object storage is configured, uploads them for sharing.
type PublishService struct {
	outputFile string
	bucket     string
	prefix     string

	fileClient file.FileOperations
	storage    s3.ObjectStorageClient
	logger     zerolog.Logger
}

// NewPublishService creates a PublishService. An empty outputFile skips the
// local copy and a nil storage skips the upload.
func NewPublishService(outputFile, bucket, prefix string, fileClient file.FileOperations,
	storage s3.ObjectStorageClient, logger zerolog.Logger) *PublishService {
	return &PublishService{
		outputFile: outputFile,
		bucket:     bucket,
		prefix:     prefix,
		fileClient: fileClient,
		storage:    storage,
		logger:     logger,
	}
}

// Publish stores html, the rendered page for result.
func (p *PublishService) Publish(ctx context.Context, result *models.SearchResult, html string) (*models.PublishedResult, error) {
	if result == nil {
		return nil, errors.New("nothing to publish")
	}

	published := &models.PublishedResult{Size: int64(len(html))}

	if p.outputFile != "" {
		if err := p.fileClient.WriteFileRaw(p.outputFile, []byte(html)); err != nil {
			p.logger.Error().Err(err).Str("file", p.outputFile).Msg("Failed to write result page")
			return nil, fmt.Errorf("failed to write result page: %w", err)
		}
		published.File = p.outputFile
		p.logger.Info().Str("file", p.outputFile).Msg("Result page written")
	}

	if p.storage == nil {
		return published, nil
	}

	objectName := ObjectName(p.prefix, result.Location)
	presignedURL, err := p.storage.Upload(ctx, p.bucket, objectName, bytes.NewReader([]byte(html)), int64(len(html)), "text/html; charset=utf-8")
	if err != nil {
		p.logger.Error().Err(err).Str("bucket", p.bucket).Str("object", objectName).Msg("Failed to upload result page")
		return nil, fmt.Errorf("failed to upload result page: %w", err)
	}

	published.ObjectName = objectName
	published.PresignedURL = presignedURL
	p.logger.Info().Str("bucket", p.bucket).Str("object", objectName).Msg("Result page uploaded")

	return published, nil
}

// ObjectName is the key a result page is stored under: one object per
// normalized coordinate, so repeated searches for a place overwrite each other.
func ObjectName(prefix string, point geo.GeoPoint) string {
	c := geo.Normalize(point)
	return path.Join(prefix, c.Latitude+"_"+c.Longitude+".html")
}
