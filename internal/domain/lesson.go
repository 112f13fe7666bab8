package domain

import "time"

type Lesson struct {
	ID                int
	Title             string
	Location          string
	Price             float64
	AvailableCapacity int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasCapacityFor reports whether the lesson could currently satisfy a
// reservation of the given quantity. It is a read-side convenience only;
// the authoritative check happens inside the capacity store's conditional
// decrement.
func (l Lesson) HasCapacityFor(quantity int) bool {
	return quantity > 0 && l.AvailableCapacity >= quantity
}
