package domain

import (
	"errors"
	"fmt"
)

// Failure categories. Concrete errors wrap one of these so callers can branch
// with errors.Is on either the specific error or its category.
var (
	ErrNotFound         = errors.New("not found")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrDuplicateState   = errors.New("duplicate state")
	ErrValidation       = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrConflict         = errors.New("conflict")
)

var (
	ErrRequestNotFound   = fmt.Errorf("blood request %w", ErrNotFound)
	ErrCampNotFound      = fmt.Errorf("camp %w", ErrNotFound)
	ErrBookingNotFound   = fmt.Errorf("booking %w", ErrNotFound)
	ErrDonorNotFound     = fmt.Errorf("donor %w", ErrNotFound)
	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)
	ErrInventoryNotFound = fmt.Errorf("blood type %w in inventory", ErrNotFound)

	ErrNoSlotsAvailable  = fmt.Errorf("no slots available: %w", ErrCapacityExceeded)
	ErrInsufficientStock = fmt.Errorf("insufficient blood units available: %w", ErrCapacityExceeded)

	ErrAlreadyBooked = fmt.Errorf("camp already booked by this user: %w", ErrDuplicateState)
	ErrEmailExists   = fmt.Errorf("email already registered: %w", ErrDuplicateState)

	ErrInvalidTransition = fmt.Errorf("status transition not allowed: %w", ErrConflict)
	ErrBookingNotActive  = fmt.Errorf("booking is no longer active: %w", ErrConflict)

	ErrInvalidBloodType = fmt.Errorf("invalid blood type: %w", ErrValidation)
	ErrInvalidUnits     = fmt.Errorf("units must be positive: %w", ErrValidation)
	ErrInvalidStatus    = fmt.Errorf("invalid status: %w", ErrValidation)

	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
	ErrAccountInactive    = fmt.Errorf("account is deactivated: %w", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("invalid or expired token: %w", ErrUnauthorized)
)
