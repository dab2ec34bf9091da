package booking

import "bookiteasy/utils"

var (
	ErrSlotTaken        = utils.Conflict("this time slot is already taken")
	ErrNotPending       = utils.Conflict("only pending bookings can be changed")
	ErrAlreadyCompleted = utils.Conflict("completed bookings cannot be cancelled")

	ErrServiceNotFound  = utils.NotFound("service not found")
	ErrEmployeeNotFound = utils.NotFound("employee not found")
	ErrBusinessNotFound = utils.NotFound("business not found")
	ErrBookingNotFound  = utils.NotFound("booking not found")

	ErrNotAllowed      = utils.Forbidden("you are not allowed to access this booking")
	ErrUnauthenticated = utils.Unauthorized("authentication required")

	ErrStartInPast     = utils.Validation("booking start time must not be in the past")
	ErrInvalidDuration = utils.Validation("service duration must be positive")
)
