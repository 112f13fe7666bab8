package dto

import "time"

type SubmitOrderRequest struct {
	Name        string            `json:"name"`
	PhoneNumber string            `json:"phoneNumber"`
	Items       []SubmitOrderItem `json:"items"`
}

type SubmitOrderItem struct {
	LessonID int `json:"lessonId"`
	Quantity int `json:"quantity"`
}

type SubmitOrderResponse struct {
	TraceID   string           `json:"traceId"`
	OrderID   uint             `json:"orderId"`
	Status    string           `json:"status"`
	Outcomes  []ItemOutcomeDTO `json:"outcomes"`
	Timestamp time.Time        `json:"timestamp"`
}

type ItemOutcomeDTO struct {
	LessonID int    `json:"lessonId"`
	Quantity int    `json:"quantity"`
	Outcome  string `json:"outcome"`
}

type OrderDTO struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	PhoneNumber string         `json:"phoneNumber"`
	Status      string         `json:"status"`
	Items       []OrderItemDTO `json:"items"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type OrderItemDTO struct {
	LessonID int `json:"lessonId"`
	Quantity int `json:"quantity"`
}
