package dto

import "time"

type DecreaseCapacityRequest struct {
	Quantity int `json:"quantity"`
}

type DecreaseCapacityResponse struct {
	TraceID   string    `json:"traceId"`
	LessonID  int       `json:"lessonId"`
	Quantity  int       `json:"quantity"`
	Outcome   string    `json:"outcome"`
	Timestamp time.Time `json:"timestamp"`
}
