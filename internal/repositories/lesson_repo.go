package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"retailpulse/internal/models"
)

type LessonRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	// List orders lessons by category, then title.
	List(ctx context.Context) ([]*models.Lesson, error)
	ListByCategory(ctx context.Context, category string) ([]*models.Lesson, error)
	UpsertProgress(ctx context.Context, progress *models.LessonProgress) error
	ListProgress(ctx context.Context, userID uuid.UUID) ([]*models.LessonProgress, error)
}

const (
	lessonColumns = `id, title, category, content, content_url, duration_mins, created_at`

	selectLessonByIDQuery = `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`

	listLessonsQuery = `SELECT ` + lessonColumns + ` FROM lessons ORDER BY category, title`

	listLessonsByCategoryQuery = `SELECT ` + lessonColumns + ` FROM lessons WHERE category = $1 ORDER BY title`

	// completed_at is only passed when the new status is completed; otherwise
	// the stored value is kept.
	upsertProgressQuery = `
		INSERT INTO user_lesson_progress (id, user_id, lesson_id, status, progress, last_viewed_at, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (user_id, lesson_id) DO UPDATE
		SET status = EXCLUDED.status,
			progress = EXCLUDED.progress,
			last_viewed_at = EXCLUDED.last_viewed_at,
			completed_at = COALESCE(EXCLUDED.completed_at, user_lesson_progress.completed_at)
		RETURNING id, completed_at`

	listProgressQuery = `
		SELECT id, user_id, lesson_id, status, progress, last_viewed_at, completed_at
		FROM user_lesson_progress
		WHERE user_id = $1
		ORDER BY last_viewed_at DESC`
)

type lessonRepo struct {
	db Database
}

func NewLessonRepo(db Database) LessonRepository {
	return &lessonRepo{db: db}
}

func (r *lessonRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	l := &models.Lesson{}
	err := r.db.QueryRow(ctx, selectLessonByIDQuery, id).
		Scan(&l.ID, &l.Title, &l.Category, &l.Content, &l.ContentURL, &l.DurationMins, &l.CreatedAt)
	if err != nil {
		return nil, mapError("get lesson", err)
	}
	return l, nil
}

func (r *lessonRepo) List(ctx context.Context) ([]*models.Lesson, error) {
	rows, err := r.db.Query(ctx, listLessonsQuery)
	if err != nil {
		return nil, mapError("list lessons", err)
	}
	return collectLessons(rows)
}

func (r *lessonRepo) ListByCategory(ctx context.Context, category string) ([]*models.Lesson, error) {
	rows, err := r.db.Query(ctx, listLessonsByCategoryQuery, category)
	if err != nil {
		return nil, mapError("list lessons by category", err)
	}
	return collectLessons(rows)
}

func (r *lessonRepo) UpsertProgress(ctx context.Context, p *models.LessonProgress) error {
	var completedAt interface{}
	if p.Status == models.ProgressCompleted {
		completedAt = p.LastViewedAt
	}
	err := r.db.QueryRow(ctx, upsertProgressQuery,
		p.ID, p.UserID, p.LessonID, string(p.Status), p.Progress, p.LastViewedAt, completedAt,
	).Scan(&p.ID, &p.CompletedAt)
	return mapError("upsert lesson progress", err)
}

func (r *lessonRepo) ListProgress(ctx context.Context, userID uuid.UUID) ([]*models.LessonProgress, error) {
	rows, err := r.db.Query(ctx, listProgressQuery, userID)
	if err != nil {
		return nil, mapError("list lesson progress", err)
	}
	defer rows.Close()

	progress := []*models.LessonProgress{}
	for rows.Next() {
		p := &models.LessonProgress{}
		var status string
		if err := rows.Scan(&p.ID, &p.UserID, &p.LessonID, &status, &p.Progress, &p.LastViewedAt, &p.CompletedAt); err != nil {
			return nil, mapError("scan lesson progress", err)
		}
		p.Status = models.ProgressStatus(status)
		progress = append(progress, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate lesson progress", err)
	}
	return progress, nil
}

func collectLessons(rows pgx.Rows) ([]*models.Lesson, error) {
	defer rows.Close()

	lessons := []*models.Lesson{}
	for rows.Next() {
		l := &models.Lesson{}
		if err := rows.Scan(&l.ID, &l.Title, &l.Category, &l.Content, &l.ContentURL, &l.DurationMins, &l.CreatedAt); err != nil {
			return nil, mapError("scan lesson", err)
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate lessons", err)
	}
	return lessons, nil
}
