package profiles

import (
	"errors"
	"time"
)

// Role is a closed set. Anything reaching the database goes through
// ParseSignupRole first, so stored roles are always one of these.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleArtist Role = "artist"
	RoleAdmin  Role = "admin"
)

var (
	ErrMissingUser = errors.New("user data is missing from the request body")
	ErrInvalidRole = errors.New("role must be 'buyer' or 'artist'")
)

// ParseSignupRole validates a client-claimed role. Admin accounts are
// provisioned out-of-band only; a signup payload claiming admin (or
// any unrecognized string) is rejected rather than stored.
func ParseSignupRole(s string) (Role, error) {
	switch Role(s) {
	case RoleBuyer, RoleArtist:
		return Role(s), nil
	case "":
		return RoleBuyer, nil
	default:
		return "", ErrInvalidRole
	}
}

type Profile struct {
	ID         string  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     string  `gorm:"type:uuid;not null;uniqueIndex:idx_profiles_user_id" json:"user_id"`
	Email      string  `gorm:"not null" json:"email"`
	FullName   string  `gorm:"not null" json:"full_name"`
	Role       Role    `gorm:"type:varchar(20);not null;default:'buyer'" json:"role"`
	IsApproved bool    `gorm:"not null" json:"is_approved"`
	PixKey     *string `gorm:"column:pix_key" json:"pix_key,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
