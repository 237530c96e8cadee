package ports

import "errors"

// Standard application-level errors.
// Adapters wrap underlying store errors with these so that callers (services,
// HTTP layer) can classify failures with errors.Is without knowing the driver.
var (
	// ErrNotFound is returned when an entity does not resolve to a stored document.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidID is returned when an identifier is not a well-formed store id,
	// independent of whether anything exists under it.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrEmptyUpdate is returned when a partial update carries no fields.
	ErrEmptyUpdate = errors.New("no fields to update")
	// ErrDuplicateEntry is returned when a unique constraint is violated.
	ErrDuplicateEntry = errors.New("record already exists")
	// ErrUnauthorized is returned when credentials or a token fail verification.
	ErrUnauthorized = errors.New("authentication failed")
	// ErrForbidden is returned when an authenticated user lacks the required role.
	ErrForbidden = errors.New("permission denied")
	// ErrInternal is returned for server-side faults, e.g. an insert that
	// reported success but whose follow-up read returned nothing.
	ErrInternal = errors.New("internal error")
)
