package common

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTestID is returned when the SDK is configured without a
	// test identifier. The SDK does not activate in that case.
	ErrMissingTestID = errors.New("testId is required via the data-test-id attribute")

	// ErrAssignmentInFlight is the result of an assignment request made
	// while another one is still outstanding.
	ErrAssignmentInFlight = errors.New("experiment assignment already in progress")

	// ErrNotInitialized is the result of a conversion report made before
	// a variant was assigned.
	ErrNotInitialized = errors.New("SDK not initialized or variantId not available")

	// ErrEmptyVariant is returned when the assignment response carries
	// no variant identifier.
	ErrEmptyVariant = errors.New("assignment response has an empty variantId")
)

// StatusError is returned for a non-success HTTP status.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d (%s)", e.Code, e.URL)
}
