package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Skill is a skill name recorded for a user from an uploaded résumé.
type Skill struct {
	UserID    uuid.UUID
	Name      string
	Source    string
	CreatedAt time.Time
}
