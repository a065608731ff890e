package usecase

import (
	"errors"

	"users-api/pkg/utils"
)

var (
	ErrInvalidUserID = errors.New("invalid user ID")
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrMissingFields = errors.New("email, first_name, last_name and role are required")
)

// ValidationError carries per-field messages for a rejected request body
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}
