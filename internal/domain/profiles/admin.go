package profiles

import (
	"context"
	"log"
	"time"

	"paisagem-app/internal/domain/works"

	"gorm.io/gorm"
)

// ObjectRemover is the slice of the object store the reject cascade
// needs. Satisfied by storage.Store.
type ObjectRemover interface {
	Remove(ctx context.Context, key string) error
}

// IsAdmin re-derives admin status from the profiles table. Privilege
// is never read from a token claim or a request payload; this is the
// trusted check every admin action goes through.
func IsAdmin(db *gorm.DB, userID string) (bool, error) {
	var n int64
	err := db.Model(&Profile{}).
		Where("user_id = ? AND role = ?", userID, RoleAdmin).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Approve marks an artist profile approved. Approving an already
// approved profile is a no-op success.
func Approve(db *gorm.DB, userID string) (int64, error) {
	res := db.Model(&Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"is_approved": true, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}

// Reject hard-deletes a profile. The target's artwork rows go in the
// same transaction so a rejected artist leaves no dangling artist_id;
// the image blobs are removed afterwards best effort. A failed blob
// delete is logged, never surfaced, since the rows are already gone.
// Rejecting an already-deleted target affects zero rows and is a
// no-op success.
func Reject(ctx context.Context, db *gorm.DB, store ObjectRemover, userID string) (int64, error) {
	var imagePaths []string
	var rows int64

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&works.Artwork{}).
			Where("artist_id = ?", userID).
			Pluck("image_path", &imagePaths).Error; err != nil {
			return err
		}
		if err := tx.Where("artist_id = ?", userID).Delete(&works.Artwork{}).Error; err != nil {
			return err
		}
		res := tx.Where("user_id = ?", userID).Delete(&Profile{})
		if res.Error != nil {
			return res.Error
		}
		rows = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	if store != nil {
		for _, path := range imagePaths {
			if err := store.Remove(ctx, path); err != nil {
				log.Printf("⚠️ Failed to remove artwork blob %s: %v", path, err)
			}
		}
	}

	return rows, nil
}
