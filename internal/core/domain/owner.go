package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Owner is a principal that can hold wallets.
type Owner struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose
	CreatedAt    time.Time `json:"created_at"`
}

// ErrUsernameTaken is returned by owner stores on a duplicate username.
var ErrUsernameTaken = errors.New("username already taken")
