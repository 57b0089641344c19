package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Bio          *string   `json:"bio"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserAuthor struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Profile is the cached public view of a user.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio"`
	Followers int64     `json:"followers"`
	Following int64     `json:"following"`
	CreatedAt time.Time `json:"created_at"`
}
