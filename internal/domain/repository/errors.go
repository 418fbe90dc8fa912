package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned on unique-constraint violations.
	ErrConflict = errors.New("conflict")
	// ErrNotEmpty is returned when deleting a wishlist that still has members.
	ErrNotEmpty = errors.New("not empty")
	// ErrReferenced is returned when deleting a wish still referenced by a wishlist.
	ErrReferenced = errors.New("still referenced")

	// ErrEmailTaken and ErrUsernameTaken refine ErrConflict for the
	// accounts table so callers know which field collided; both match
	// ErrConflict under errors.Is.
	ErrEmailTaken    = fmt.Errorf("email %w", ErrConflict)
	ErrUsernameTaken = fmt.Errorf("username %w", ErrConflict)
)
