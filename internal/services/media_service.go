package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MediaService stores organization logos and banner images in object storage.
type MediaService interface {
	UploadImage(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) (string, error)
	GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	DeleteImage(ctx context.Context, objectName string) error
}

type minioMediaService struct {
	client *minio.Client
	bucket string
}

func NewMediaService(endpoint, accessKey, secretKey, bucket string, useSSL bool) (MediaService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	svc := &minioMediaService{client: client, bucket: bucket}
	if err := svc.ensureBucket(context.Background()); err != nil {
		return nil, err
	}
	return svc, nil
}

func (m *minioMediaService) ensureBucket(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (m *minioMediaService) UploadImage(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, objectSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("/%s/%s", m.bucket, objectName), nil
}

func (m *minioMediaService) GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (m *minioMediaService) DeleteImage(ctx context.Context, objectName string) error {
	return m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
}
