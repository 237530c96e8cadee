package domain

import "errors"

// Structural validation errors for tiros and their legs.
// Callers can match these with errors.Is to report the violated rule.
var (
	// ErrInvalidDirection is returned when a leg direction is neither BUY nor SELL.
	ErrInvalidDirection = errors.New("leg direction must be BUY or SELL")
	// ErrInvalidAccountCount is returned when a leg has zero or more than two accounts.
	ErrInvalidAccountCount = errors.New("leg must have between 1 and 2 accounts")
	// ErrEmptyOperations is returned when an account in a leg carries no operations.
	ErrEmptyOperations = errors.New("each account must have at least 1 operation")
	// ErrSameDirectionLegs is returned when both legs of a tiro trade the same side.
	ErrSameDirectionLegs = errors.New("legs must have opposite directions (one BUY and one SELL)")
	// ErrDuplicateAccountInLeg is returned when the same account appears twice within one leg.
	ErrDuplicateAccountInLeg = errors.New("duplicate account within the same leg")
)
