package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"review-backend/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// StorageService hands out presigned PUT URLs so admins can upload title
// artwork straight to object storage without proxying bytes through the API.
type StorageService struct {
	client    *minio.Client
	bucket    string
	publicURL string
	logger    *logrus.Logger
}

func NewStorageService(cfg *config.MinIOConfig, logger *logrus.Logger) (*StorageService, error) {
	endpoint := strings.TrimPrefix(cfg.Endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"bucket":   cfg.BucketName,
	}).Info("Object storage client initialized")

	s := &StorageService{
		client:    client,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
		logger:    logger,
	}

	if err := s.ensureBucket(context.Background()); err != nil {
		logger.WithError(err).Warn("Failed to configure artwork bucket, continuing")
	}

	return s, nil
}

func (s *StorageService) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	s.logger.WithField("bucket", s.bucket).Info("Artwork bucket created")
	return nil
}

// PresignUpload returns a short-lived upload URL plus the public URL the
// object will be served from. Object names get a random suffix so repeated
// uploads of the same filename never clobber each other.
func (s *StorageService) PresignUpload(ctx context.Context, filename string) (string, string, error) {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	objectName := fmt.Sprintf("%s_%s%s", base, uuid.New().String()[:8], ext)

	presigned, err := s.client.PresignedPutObject(ctx, s.bucket, objectName, 15*time.Minute)
	if err != nil {
		return "", "", fmt.Errorf("failed to presign upload: %w", err)
	}

	publicURL := fmt.Sprintf("%s/%s", s.publicURL, objectName)
	if s.publicURL == "" {
		publicURL = fmt.Sprintf("%s/%s/%s", s.client.EndpointURL(), s.bucket, objectName)
	}

	s.logger.WithFields(logrus.Fields{
		"object": objectName,
		"bucket": s.bucket,
	}).Info("Generated artwork upload URL")

	return presigned.String(), publicURL, nil
}
