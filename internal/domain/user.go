package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account in the system. Every root entity (program, workout
// log, personal record) is scoped to exactly one user by its UserID.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"` // unique
	PasswordHash string    `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewUser creates a user with a fresh ID and stamped timestamps.
func NewUser(name, email, passwordHash string) User {
	now := time.Now().UTC()
	return User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
