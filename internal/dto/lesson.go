package dto

type LessonDTO struct {
	ID                int     `json:"id"`
	Title             string  `json:"title"`
	Location          string  `json:"location"`
	Price             float64 `json:"price"`
	AvailableCapacity int     `json:"availableCapacity"`
}
