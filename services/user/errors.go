package user

import "bookiteasy/utils"

var (
	ErrUserNotFound     = utils.NotFound("profile not found")
	ErrBusinessNotFound = utils.NotFound("business not found")
	ErrEmailTaken       = utils.Conflict("email is already used by another account")
	ErrUnauthenticated  = utils.Unauthorized("authentication required")
)
