package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"lectern/internal/dto"
	apperrors "lectern/internal/errors"
)

type BrowseUseCase interface {
	ListLessons(ctx context.Context) ([]dto.LessonDTO, error)
	GetLesson(ctx context.Context, lessonID int) (*dto.LessonDTO, error)
}

type LessonsController struct {
	useCase BrowseUseCase
	logger  *zap.Logger
}

func NewLessonsController(useCase BrowseUseCase, logger *zap.Logger) *LessonsController {
	return &LessonsController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *LessonsController) HandleListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := c.useCase.ListLessons(r.Context())
	if err != nil {
		c.logger.Error("list lessons failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	if lessons == nil {
		lessons = []dto.LessonDTO{}
	}

	c.writeJSON(w, http.StatusOK, lessons)
}

func (c *LessonsController) HandleGetLesson(w http.ResponseWriter, r *http.Request) {
	lessonIDStr := chi.URLParam(r, "lessonId")
	lessonID, err := strconv.Atoi(lessonIDStr)
	if err != nil || lessonID <= 0 {
		c.writeValidationError(w, "invalid lessonId", apperrors.ValidationDetail{
			Field:   "lessonId",
			Message: "lessonId must be a positive integer",
		})
		return
	}

	lesson, err := c.useCase.GetLesson(r.Context(), lessonID)
	if err != nil {
		if nfe, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, map[string]string{
				"error":   "NOT_FOUND",
				"message": nfe.Message,
			})
			return
		}

		c.logger.Error("get lesson failed", zap.Int("lessonId", lessonID), zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, lesson)
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *LessonsController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *LessonsController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
