package models

import (
	"time"

	"github.com/google/uuid"
)

type Lesson struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Category     string    `json:"category" db:"category"`
	Content      *string   `json:"content" db:"content"`
	ContentURL   *string   `json:"content_url" db:"content_url"`
	DurationMins int       `json:"duration_mins" db:"duration_mins"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not_started"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

type LessonProgress struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	UserID       uuid.UUID      `json:"user_id" db:"user_id"`
	LessonID     uuid.UUID      `json:"lesson_id" db:"lesson_id"`
	Status       ProgressStatus `json:"status" db:"status"`
	Progress     int            `json:"progress" db:"progress"`
	LastViewedAt time.Time      `json:"last_viewed_at" db:"last_viewed_at"`
	CompletedAt  *time.Time     `json:"completed_at" db:"completed_at"`
}

type UpdateProgressRequest struct {
	Status   ProgressStatus `json:"status" validate:"required,oneof=not_started in_progress completed"`
	Progress int            `json:"progress" validate:"min=0,max=100"`
}
