package dto

type ReservationOutcome string

const (
	OutcomeApplied              ReservationOutcome = "APPLIED"
	OutcomeInsufficientCapacity ReservationOutcome = "INSUFFICIENT_CAPACITY"
	OutcomeLessonNotFound       ReservationOutcome = "LESSON_NOT_FOUND"
	OutcomeInvalidQuantity      ReservationOutcome = "INVALID_QUANTITY"
)

type ReservationStatus string

const (
	ReservationAllApplied       ReservationStatus = "ALL_APPLIED"
	ReservationPartiallyApplied ReservationStatus = "PARTIALLY_APPLIED"
	ReservationNoneApplied      ReservationStatus = "NONE_APPLIED"
)

type ReservationRequest struct {
	LessonID int
	Quantity int
}

type ItemOutcome struct {
	LessonID int
	Quantity int
	Outcome  ReservationOutcome
}

// OrderReservationResult carries one outcome per requested line item, in
// request order, plus the aggregate status. Partial failure is a normal
// business result here, not an error.
type OrderReservationResult struct {
	OrderID  uint
	Status   ReservationStatus
	Outcomes []ItemOutcome
}

// AppliedQuantity returns the total number of seats this result actually
// consumed.
func (r OrderReservationResult) AppliedQuantity() int {
	total := 0
	for _, o := range r.Outcomes {
		if o.Outcome == OutcomeApplied {
			total += o.Quantity
		}
	}
	return total
}
