package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/config"
	"github.com/estate-backoffice/internal/domain/repository"
	"github.com/estate-backoffice/internal/pkg/errors"
)

type s3Storage struct {
	client        *s3.Client
	publicBaseURL string
	logger        *zap.Logger
}

// NewS3Storage creates the object storage client holding the image variants.
func NewS3Storage(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (repository.StorageRepository, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})

	logger.Info("Object storage client initialized",
		zap.String("region", cfg.Region),
		zap.String("endpoint", cfg.Endpoint))

	return &s3Storage{
		client:        client,
		publicBaseURL: cfg.PublicBaseURL,
		logger:        logger,
	}, nil
}

func (s *s3Storage) Upload(ctx context.Context, bucket, path string, body io.Reader, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(path),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("Failed to upload object",
			zap.String("bucket", bucket),
			zap.String("path", path),
			zap.Error(err))
		return "", errors.ErrStorageError
	}

	url := fmt.Sprintf("%s/%s/%s", s.publicBaseURL, bucket, path)
	s.logger.Debug("Object uploaded", zap.String("url", url))
	return url, nil
}

func (s *s3Storage) Delete(ctx context.Context, bucket, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		s.logger.Error("Failed to delete object",
			zap.String("bucket", bucket),
			zap.String("path", path),
			zap.Error(err))
		return errors.ErrStorageError
	}
	return nil
}
