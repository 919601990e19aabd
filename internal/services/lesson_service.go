package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"retailpulse/internal/models"
	"retailpulse/internal/repositories"
)

type LessonService interface {
	List(ctx context.Context, category string) ([]*models.Lesson, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	ListProgress(ctx context.Context, userID uuid.UUID) ([]*models.LessonProgress, error)
	UpdateProgress(ctx context.Context, userID, lessonID uuid.UUID, req *models.UpdateProgressRequest) (*models.LessonProgress, error)
}

type lessonService struct {
	lessonRepo repositories.LessonRepository
	now        func() time.Time
}

func NewLessonService(lessonRepo repositories.LessonRepository) LessonService {
	return &lessonService{lessonRepo: lessonRepo, now: time.Now}
}

func (s *lessonService) List(ctx context.Context, category string) ([]*models.Lesson, error) {
	if category = strings.TrimSpace(category); category != "" {
		return s.lessonRepo.ListByCategory(ctx, category)
	}
	return s.lessonRepo.List(ctx)
}

func (s *lessonService) GetByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	return s.lessonRepo.GetByID(ctx, id)
}

func (s *lessonService) ListProgress(ctx context.Context, userID uuid.UUID) ([]*models.LessonProgress, error) {
	return s.lessonRepo.ListProgress(ctx, userID)
}

// UpdateProgress upserts the user's row for the lesson. completed_at is stamped
// whenever the status is completed and otherwise keeps its previous value.
func (s *lessonService) UpdateProgress(ctx context.Context, userID, lessonID uuid.UUID, req *models.UpdateProgressRequest) (*models.LessonProgress, error) {
	if _, err := s.lessonRepo.GetByID(ctx, lessonID); err != nil {
		return nil, err
	}

	progress := &models.LessonProgress{
		ID:           uuid.New(),
		UserID:       userID,
		LessonID:     lessonID,
		Status:       req.Status,
		Progress:     req.Progress,
		LastViewedAt: s.now().UTC(),
	}
	if err := s.lessonRepo.UpsertProgress(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}
