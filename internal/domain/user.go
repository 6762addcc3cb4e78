package domain

import "time"

// User represents a reader with a BookDen account.
type User struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
}

// InitTimestamps sets CreatedAt and UpdatedAt for a new user.
func (u *User) InitTimestamps() {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}
