package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"retailpulse/internal/analytics"
	"retailpulse/internal/models"
)

func TestSnapshotObjectName(t *testing.T) {
	at := time.Date(2024, time.March, 7, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "snapshots/2024/03/07/last_3_months.json", SnapshotObjectName("last_3_months", at))
}

func TestReportArchiver_Archive(t *testing.T) {
	ctx := context.Background()
	store := &MockMinioService{}
	source := &MockSnapshotSource{}
	at := time.Date(2024, time.March, 7, 8, 0, 0, 0, time.UTC)

	source.On("Dashboard", ctx, "current_month", analytics.DashboardOptions{SkipCache: true}).
		Return(&models.DashboardMetrics{TotalSales: 100}, nil)
	source.On("Insights", ctx).Return([]models.Insight{{Type: models.InsightInfo, Title: "Business Health"}}, nil)
	store.On("EnsureBucketExists", ctx, "retail-snapshots").Return(nil)
	store.On("UploadObject", ctx, "retail-snapshots", "snapshots/2024/03/07/current_month.json",
		mock.Anything, mock.AnythingOfType("int64"), "application/json").Return(nil)

	archiver := NewReportArchiver(store, source, "retail-snapshots", zerolog.Nop())
	archiver.now = func() time.Time { return at }

	name, err := archiver.Archive(ctx, "bogus")

	require.NoError(t, err)
	assert.Equal(t, "snapshots/2024/03/07/current_month.json", name)
	mock.AssertExpectationsForObjects(t, store, source)
}

func TestReportArchiver_UploadFailure(t *testing.T) {
	ctx := context.Background()
	store := &MockMinioService{}
	source := &MockSnapshotSource{}

	source.On("Dashboard", ctx, "current_month", analytics.DashboardOptions{SkipCache: true}).
		Return(&models.DashboardMetrics{}, nil)
	source.On("Insights", ctx).Return([]models.Insight{}, nil)
	store.On("EnsureBucketExists", ctx, "b").Return(nil)
	store.On("UploadObject", ctx, "b", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("access denied"))

	_, err := NewReportArchiver(store, source, "b", zerolog.Nop()).Archive(ctx, "current_month")

	assert.ErrorContains(t, err, "access denied")
}

func TestReportArchiver_DashboardFailureSkipsUpload(t *testing.T) {
	ctx := context.Background()
	store := &MockMinioService{}
	source := &MockSnapshotSource{}
	source.On("Dashboard", ctx, "current_month", mock.Anything).Return(nil, errors.New("db down"))

	_, err := NewReportArchiver(store, source, "b", zerolog.Nop()).Archive(ctx, "current_month")

	assert.Error(t, err)
	store.AssertNotCalled(t, "UploadObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
