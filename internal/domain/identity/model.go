package identity

import (
	"time"
)

// User is the raw identity record: credentials only, no marketplace
// state. The application-level Profile row lives in the profiles
// package and is keyed by User.ID.
type User struct {
	ID           string  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string  `gorm:"not null;uniqueIndex:idx_identities_email" json:"email"`
	Password     *string `gorm:"" json:"-"`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'" json:"-"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_identities_google_sub" json:"-"`
	IsVerified   bool    `json:"is_verified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "identities" }

const (
	TokenEmailVerification = "email_verification"
	TokenPasswordReset     = "password_reset"
)

type VerificationToken struct {
	ID     uint   `gorm:"primaryKey"`
	UserID string `gorm:"type:uuid;not null;index"`
	Token  string `gorm:"not null;uniqueIndex"`
	Type   string `gorm:"type:varchar(30);not null;default:'email_verification'"`

	ExpiresAt time.Time
	CreatedAt time.Time
}
