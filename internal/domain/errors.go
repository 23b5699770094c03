package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Task errors
	ErrTaskNotFound  = errors.New("task not found")
	ErrForbidden     = errors.New("role not permitted for this transition")
	ErrInvalidTarget = errors.New("target status not reachable")
	ErrConflict      = errors.New("task was modified concurrently")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrUserInactive = errors.New("user is inactive")
	ErrInvalidToken = errors.New("invalid authentication token")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")

	// Validation errors
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrEmptyMessage    = errors.New("message is required")
)
