package entity

import (
	"time"
)

// User is the aggregate root for the account domain. PasswordHash holds a
// bcrypt hash; the plaintext is never stored anywhere.
type User struct {
	ID                  int64
	Email               string
	PasswordHash        string
	Name                string
	DateOfBirth         *time.Time
	SignupDate          time.Time
	ForcePasswordChange bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
