package application

import "errors"

// Typed outcomes callers must handle explicitly. Anything else coming
// out of a service is an unexpected store failure and propagates
// unchanged.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidWish        = errors.New("invalid wish")
	ErrNotFound           = errors.New("not found")
	ErrNotEmpty           = errors.New("wishlist still has wishes")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrReferencedEntity   = errors.New("wish is still referenced by a wishlist")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
