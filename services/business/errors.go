package business

import "bookiteasy/utils"

var (
	ErrBusinessNotFound = utils.NotFound("business not found")
	ErrEmployeeNotFound = utils.NotFound("employee not found")
	ErrServiceNotFound  = utils.NotFound("service not found")
	ErrImageNotFound    = utils.NotFound("image not found")

	ErrAlreadyRegistered   = utils.Conflict("you already have a registered business")
	ErrEmployeeHasServices = utils.Conflict("employee still performs services, reassign or delete them first")
	ErrAlreadyReviewed     = utils.Conflict("you have already reviewed this business")

	ErrNotAllowed      = utils.Forbidden("you are not allowed to manage this business")
	ErrReviewForbidden = utils.Forbidden("only customers with a completed booking can review this business")
	ErrUnauthenticated = utils.Unauthorized("authentication required")

	ErrInvalidTimezone = utils.Validation("unknown timezone")
	ErrInvalidHours    = utils.Validation("working hours must start before they end")
	ErrDuplicateDay    = utils.Validation("each day of the week may appear only once")
	ErrInvalidDay      = utils.Validation("invalid day of week")
	ErrInvalidClock    = utils.Validation("times must be formatted as HH:MM")
	ErrForeignEmployee = utils.Validation("employee does not belong to this business")
	ErrInvalidDuration = utils.Validation("service duration must be between 1 and 480 minutes")
)

// NotPublishableError lists what a business is missing before it can be published.
type NotPublishableError struct {
	Missing []string
}

func (e *NotPublishableError) Error() string {
	return "business cannot be published yet"
}

// Unwrap classifies the error as a validation failure for the transport layer.
func (e *NotPublishableError) Unwrap() error {
	return utils.Validation(e.Error())
}
