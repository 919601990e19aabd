package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"retailpulse/internal/analytics"
	"retailpulse/internal/models"
)

type MinioService interface {
	UploadObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error
	GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error)
	EnsureBucketExists(ctx context.Context, bucketName string) error
}

type minioClient struct {
	client *minio.Client
}

func NewMinioService(endpoint, accessKey, secretKey string, useSSL bool) (MinioService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioClient{client: client}, nil
}

func (m *minioClient) UploadObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	_, err := m.client.PutObject(ctx, bucketName, objectName, reader, objectSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (m *minioClient) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, bucketName, objectName, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (m *minioClient) EnsureBucketExists(ctx context.Context, bucketName string) error {
	found, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
	}
	return nil
}

// SnapshotSource is the slice of the analytics service the archiver reads.
type SnapshotSource interface {
	Dashboard(ctx context.Context, periodKey string, opts analytics.DashboardOptions) (*models.DashboardMetrics, error)
	Insights(ctx context.Context) ([]models.Insight, error)
}

// ReportArchiver writes dated JSON snapshots of the dashboard to object storage.
type ReportArchiver struct {
	store  MinioService
	source SnapshotSource
	bucket string
	logger zerolog.Logger
	now    func() time.Time
}

func NewReportArchiver(store MinioService, source SnapshotSource, bucket string, logger zerolog.Logger) *ReportArchiver {
	return &ReportArchiver{
		store:  store,
		source: source,
		bucket: bucket,
		logger: logger,
		now:    time.Now,
	}
}

// SnapshotObjectName is snapshots/YYYY/MM/DD/<period>.json; one object per
// period per day, a second run on the same day overwrites it.
func SnapshotObjectName(periodKey string, at time.Time) string {
	return path.Join("snapshots", at.UTC().Format("2006/01/02"), periodKey+".json")
}

// Archive computes a fresh dashboard for periodKey and uploads it together
// with the current insights. It returns the object name.
func (a *ReportArchiver) Archive(ctx context.Context, periodKey string) (string, error) {
	periodKey = analytics.NormalizePeriod(periodKey)

	metrics, err := a.source.Dashboard(ctx, periodKey, analytics.DashboardOptions{SkipCache: true})
	if err != nil {
		return "", fmt.Errorf("archive %s: %w", periodKey, err)
	}
	insights, err := a.source.Insights(ctx)
	if err != nil {
		return "", fmt.Errorf("archive %s: %w", periodKey, err)
	}

	now := a.now()
	body, err := json.Marshal(models.ReportSnapshot{
		PeriodKey:   periodKey,
		GeneratedAt: now.UTC(),
		Metrics:     *metrics,
		Insights:    insights,
	})
	if err != nil {
		return "", err
	}

	if err := a.store.EnsureBucketExists(ctx, a.bucket); err != nil {
		return "", fmt.Errorf("ensure bucket %s: %w", a.bucket, err)
	}

	name := SnapshotObjectName(periodKey, now)
	if err := a.store.UploadObject(ctx, a.bucket, name, bytes.NewReader(body), int64(len(body)), "application/json"); err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}

	a.logger.Info().Str("bucket", a.bucket).Str("object", name).Int("insights", len(insights)).Msg("dashboard snapshot archived")
	return name, nil
}
