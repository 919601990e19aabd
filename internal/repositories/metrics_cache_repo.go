package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"retailpulse/internal/models"
)

const (
	selectMetricsCacheQuery = `SELECT kpis FROM metrics_cache WHERE period_key = $1`

	upsertMetricsCacheQuery = `
		INSERT INTO metrics_cache (period_key, kpis, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (period_key) DO UPDATE
		SET kpis = EXCLUDED.kpis, updated_at = NOW()`

	deleteMetricsCacheQuery = `DELETE FROM metrics_cache`
)

// MetricsCacheRepo keeps metrics snapshots in the metrics_cache table.
type MetricsCacheRepo struct {
	db Database
}

func NewMetricsCacheRepo(db Database) *MetricsCacheRepo {
	return &MetricsCacheRepo{db: db}
}

// GetMetrics returns nil, nil when no row exists for periodKey.
func (r *MetricsCacheRepo) GetMetrics(ctx context.Context, periodKey string) (*models.MetricsSnapshot, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, selectMetricsCacheQuery, periodKey).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get metrics cache", err)
	}

	var snap models.MetricsSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode metrics cache %s: %w", periodKey, err)
	}
	if snap.Version != models.MetricsSnapshotVersion {
		return nil, nil
	}
	return &snap, nil
}

func (r *MetricsCacheRepo) SetMetrics(ctx context.Context, snapshot *models.MetricsSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode metrics cache: %w", err)
	}
	_, err = r.db.Exec(ctx, upsertMetricsCacheQuery, snapshot.PeriodKey, raw)
	return mapError("upsert metrics cache", err)
}

func (r *MetricsCacheRepo) InvalidateMetrics(ctx context.Context) error {
	_, err := r.db.Exec(ctx, deleteMetricsCacheQuery)
	return mapError("clear metrics cache", err)
}
