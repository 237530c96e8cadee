package domain

import "time"

// User is an application login. HashedPassword never leaves the backend; the
// HTTP layer serializes users through a response type without it.
type User struct {
	ID             string
	Email          string
	Name           string
	Role           UserRole
	HashedPassword string
	IsActive       bool
	CreatedAt      time.Time
}
