package profiles

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SignupMetadata is the client-supplied part of a signup payload. The
// role in here is a claim, not a fact; it is validated before storage.
type SignupMetadata struct {
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	PixKey   string `json:"pix_key"`
}

// IdentityPayload mirrors the identity record handed to provisioning
// right after signup.
type IdentityPayload struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	RawUserMetaData *SignupMetadata `json:"raw_user_meta_data"`
}

// Provision materializes exactly one Profile row for an identity.
// Upsert keyed on user_id: a retried call updates in place instead of
// failing, so calling this N times converges to one row carrying the
// Nth payload's values. is_approved is never touched here, only the
// admin approve path sets it.
func Provision(db *gorm.DB, user *IdentityPayload) (*Profile, error) {
	if user == nil || user.ID == "" {
		return nil, ErrMissingUser
	}

	meta := user.RawUserMetaData
	if meta == nil {
		meta = &SignupMetadata{}
	}

	role, err := ParseSignupRole(meta.Role)
	if err != nil {
		return nil, err
	}

	fullName := meta.FullName
	if fullName == "" {
		fullName = "Usuário"
	}

	var pixKey *string
	if role == RoleArtist && meta.PixKey != "" {
		k := meta.PixKey
		pixKey = &k
	}

	profile := Profile{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  fullName,
		Role:      role,
		PixKey:    pixKey,
		UpdatedAt: time.Now(),
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "full_name", "role", "pix_key", "updated_at"}),
	}).Create(&profile).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the caller gets the materialized row (id, is_approved,
	// created_at of the surviving row, not of this call's struct).
	var out Profile
	if err := db.Where("user_id = ?", user.ID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
