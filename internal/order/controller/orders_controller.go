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
	"lectern/internal/validation"
)

type SubmitOrderUseCase interface {
	SubmitOrder(ctx context.Context, req dto.SubmitOrderRequest) (*dto.OrderReservationResult, error)
	GetOrder(ctx context.Context, orderID uint) (*dto.OrderDTO, error)
	ListOrders(ctx context.Context) ([]dto.OrderDTO, error)
}

type OrdersController struct {
	useCase SubmitOrderUseCase
	logger  *zap.Logger
}

func NewOrdersController(useCase SubmitOrderUseCase, logger *zap.Logger) *OrdersController {
	return &OrdersController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *OrdersController) HandleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateSubmitOrderRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		logger.Warn("order submission rejected", zap.String("message", ve.Message))
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	result, err := c.useCase.SubmitOrder(r.Context(), req)
	if err != nil {
		logger.Error("order submission failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	c.writeSubmitOrderResponse(w, traceID, result)
}

// validateSubmitOrderRequest enforces the InvalidInput rules on the order
// payload. Per-item quantity problems are not rejected here: they surface as
// INVALID_QUANTITY outcomes in the reservation result.
func (c *OrdersController) validateSubmitOrderRequest(req dto.SubmitOrderRequest) error {
	var details []apperrors.ValidationDetail

	if !validation.ValidCustomerName(req.Name) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must contain letters and whitespace only",
		})
	}

	if !validation.ValidCustomerPhone(req.PhoneNumber) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "phoneNumber",
			Message: "phoneNumber must contain digits, parentheses and dashes only",
		})
	}

	if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	if len(req.Items) > 100 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items exceeds maximum of 100",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func (c *OrdersController) writeSubmitOrderResponse(w http.ResponseWriter, traceID string, result *dto.OrderReservationResult) {
	outcomes := make([]dto.ItemOutcomeDTO, len(result.Outcomes))
	for i, o := range result.Outcomes {
		outcomes[i] = dto.ItemOutcomeDTO{
			LessonID: o.LessonID,
			Quantity: o.Quantity,
			Outcome:  string(o.Outcome),
		}
	}

	response := dto.SubmitOrderResponse{
		TraceID:   traceID,
		OrderID:   result.OrderID,
		Status:    string(result.Status),
		Outcomes:  outcomes,
		Timestamp: time.Now().UTC(),
	}

	statusCode := http.StatusCreated
	if result.Status == dto.ReservationPartiallyApplied {
		statusCode = http.StatusPartialContent
	} else if result.Status == dto.ReservationNoneApplied {
		statusCode = http.StatusUnprocessableEntity
	}

	c.writeJSON(w, statusCode, response)
}

func (c *OrdersController) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderIDStr := chi.URLParam(r, "orderId")
	orderID, err := strconv.ParseUint(orderIDStr, 10, 64)
	if err != nil || orderID == 0 {
		c.writeValidationError(w, "invalid orderId", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId must be a positive integer",
		})
		return
	}

	order, err := c.useCase.GetOrder(r.Context(), uint(orderID))
	if err != nil {
		if nfe, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, map[string]string{
				"error":   "NOT_FOUND",
				"message": nfe.Message,
			})
			return
		}

		c.logger.Error("get order failed", zap.Uint64("orderId", orderID), zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, order)
}

func (c *OrdersController) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := c.useCase.ListOrders(r.Context())
	if err != nil {
		c.logger.Error("list orders failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	if orders == nil {
		orders = []dto.OrderDTO{}
	}

	c.writeJSON(w, http.StatusOK, orders)
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *OrdersController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *OrdersController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
