package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"lectern/internal/dto"
	apperrors "lectern/internal/errors"
)

type CapacityStore interface {
	TryDecrement(ctx context.Context, lessonID int, quantity int) (dto.ReservationOutcome, error)
}

type CapacityController struct {
	store  CapacityStore
	logger *zap.Logger
}

func NewCapacityController(store CapacityStore, logger *zap.Logger) *CapacityController {
	return &CapacityController{
		store:  store,
		logger: logger,
	}
}

func (c *CapacityController) DecreaseCapacity(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	lessonIDStr := chi.URLParam(r, "lessonId")
	lessonID, err := strconv.Atoi(lessonIDStr)
	if err != nil || lessonID <= 0 {
		logger.Warn("invalid lessonId in path", zap.String("lessonId", lessonIDStr))
		c.writeValidationError(w, "invalid lessonId", apperrors.ValidationDetail{
			Field:   "lessonId",
			Message: "lessonId must be a positive integer",
		})
		return
	}

	var req dto.DecreaseCapacityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	outcome, err := c.store.TryDecrement(r.Context(), lessonID, req.Quantity)
	if err != nil {
		logger.Error("capacity decrement failed", zap.Int("lessonId", lessonID), zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	logger.Info("capacity decrement finished",
		zap.Int("lessonId", lessonID),
		zap.Int("quantity", req.Quantity),
		zap.String("outcome", string(outcome)),
	)

	response := dto.DecreaseCapacityResponse{
		TraceID:   traceID,
		LessonID:  lessonID,
		Quantity:  req.Quantity,
		Outcome:   string(outcome),
		Timestamp: time.Now().UTC(),
	}

	c.writeJSON(w, statusForOutcome(outcome), response)
}

func statusForOutcome(outcome dto.ReservationOutcome) int {
	switch outcome {
	case dto.OutcomeApplied:
		return http.StatusOK
	case dto.OutcomeLessonNotFound:
		return http.StatusNotFound
	case dto.OutcomeInsufficientCapacity:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *CapacityController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *CapacityController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
