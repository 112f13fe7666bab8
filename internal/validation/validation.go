// Package validation holds the pure predicate functions applied to request
// data before it reaches the capacity store or the order ledger.
package validation

import "regexp"

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	phoneRe = regexp.MustCompile(`^[0-9()-]+$`)
)

// ValidLessonID reports whether id is well-formed under the capacity store's
// identifier scheme (positive integer).
func ValidLessonID(id int) bool {
	return id > 0
}

// ValidQuantity reports whether quantity is an acceptable reservation amount.
// Zero and negative values are rejected.
func ValidQuantity(quantity int) bool {
	return quantity > 0
}

// ValidCustomerName accepts letters and whitespace only.
func ValidCustomerName(name string) bool {
	return nameRe.MatchString(name)
}

// ValidCustomerPhone accepts digits, parentheses and dashes only.
func ValidCustomerPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}
