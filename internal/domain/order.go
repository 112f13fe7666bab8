package domain

import "time"

type Order struct {
	ID            uint
	CustomerName  string
	CustomerPhone string
	Status        string
	LineItems     []OrderLineItem
	CreatedAt     time.Time
}

type OrderLineItem struct {
	ID       uint
	OrderID  uint
	LessonID int
	Quantity int
}

const (
	OrderStatusPending          = "PENDING"
	OrderStatusCreated          = "CREATED"
	OrderStatusPartiallyCreated = "PARTIALLY_CREATED"
	OrderStatusRejected         = "REJECTED"
)
