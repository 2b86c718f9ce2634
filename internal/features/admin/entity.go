package admin

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a storefront administrator account. ResetToken and
// ResetTokenExpiresAt are either both set or both nil; a set pair is
// an outstanding one-time password recovery token.
type Admin struct {
	AdminID             uuid.UUID  `json:"adminID"`
	Username            string     `json:"username"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	ResetToken          *string    `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"createdAt"`
}
