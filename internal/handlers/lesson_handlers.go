package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"retailpulse/internal/common"
	"retailpulse/internal/models"
	"retailpulse/internal/services"
)

type LessonHandlers struct {
	lessonService services.LessonService
}

func NewLessonHandlers(lessonService services.LessonService) *LessonHandlers {
	return &LessonHandlers{lessonService: lessonService}
}

// ListLessons handles GET /api/lessons?category=
func (h *LessonHandlers) ListLessons(c echo.Context) error {
	lessons, err := h.lessonService.List(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return respondError(c, err, "Lesson")
	}
	return c.JSON(http.StatusOK, lessons)
}

// GetLesson handles GET /api/lessons/:id
func (h *LessonHandlers) GetLesson(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	lesson, err := h.lessonService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Lesson")
	}
	return c.JSON(http.StatusOK, lesson)
}

// ListProgress handles GET /api/lessons/progress for the caller.
func (h *LessonHandlers) ListProgress(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	progress, err := h.lessonService.ListProgress(ctx, userID)
	if err != nil {
		return respondError(c, err, "Lesson progress")
	}
	return c.JSON(http.StatusOK, progress)
}

// UpdateProgress handles PUT /api/lessons/:id/progress
func (h *LessonHandlers) UpdateProgress(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	lessonID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req models.UpdateProgressRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	progress, err := h.lessonService.UpdateProgress(ctx, userID, lessonID, &req)
	if err != nil {
		return respondError(c, err, "Lesson")
	}
	return c.JSON(http.StatusOK, progress)
}
