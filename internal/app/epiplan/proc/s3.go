package proc

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	log "github.com/go-pkgz/lgr"
	"github.com/minio/minio-go/v7"
)

// S3Store keeps a cloud copy of exported files
type S3Store struct {
	Client   *minio.Client
	Location string
	Bucket   string
}

// UploadExport puts exported file to s3 storage and returns its location
func (s *S3Store) UploadExport(ctx context.Context, filePath string) (string, error) {
	objectName := filepath.Base(filePath)
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	uploadInfo, err := s.Client.FPutObject(ctx, s.Bucket, objectName, filePath,
		minio.PutObjectOptions{ContentType: contentType(objectName)})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectName, err)
	}

	if uploadInfo.Location != "" {
		return uploadInfo.Location, nil
	}
	return s.getLocation(ctx, objectName)
}

func (s *S3Store) ensureBucket(ctx context.Context) error {
	exists, err := s.Client.BucketExists(ctx, s.Bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.Bucket, err)
	}
	if exists {
		return nil
	}

	log.Printf("[INFO] create bucket %s in %s", s.Bucket, s.Location)
	if err := s.Client.MakeBucket(ctx, s.Bucket, minio.MakeBucketOptions{Region: s.Location}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.Bucket, err)
	}
	return nil
}

func (s *S3Store) getLocation(ctx context.Context, objectName string) (string, error) {
	endpoint := s.Client.EndpointURL()

	statInfo, err := s.Client.StatObject(ctx, s.Bucket, objectName, minio.StatObjectOptions{})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(endpoint.String(), "/"), s.Bucket, statInfo.Key), nil
}

func contentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return "text/csv"
	case ".pdf":
		return "application/pdf"
	case ".html":
		return "text/html"
	default:
		return "application/octet-stream"
	}
}
