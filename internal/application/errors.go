package application

import "errors"

// Service-layer failure kinds. The HTTP boundary matches these with
// errors.Is and owns the translation to status codes; nothing below it
// decides presentation.
var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskForbidden      = errors.New("task belongs to another user")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
)
