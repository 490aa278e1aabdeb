// Package users owns user records for the lifetime of the process.
// Records live in memory only; restarting the server forgets every account.
package users

import (
	"time"

	"github.com/user/tierapi-go/plans"
)

// User represents an account.
// The `json:"-"` tag keeps the password hash out of every API response.
type User struct {
	// ID is the identifier chosen at signup (the username). It is the token subject.
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"display_name"`
	PasswordHash string     `json:"-"`
	Tier         plans.Tier `json:"package_tier"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// PublicUser is the profile shape returned to clients.
type PublicUser struct {
	ID          string     `json:"id" example:"johndoe"`
	Email       string     `json:"email" example:"johndoe@example.com"`
	DisplayName string     `json:"display_name" example:"John Doe"`
	Tier        plans.Tier `json:"package_tier" example:"free"`
}

// Public strips everything a client should not see.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Tier:        u.Tier,
	}
}
