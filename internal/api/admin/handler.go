package admin

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"paisagem-app/database"
	"paisagem-app/internal/domain/profiles"
	"paisagem-app/internal/domain/works"
	"paisagem-app/internal/infra/storage"

	"github.com/gin-gonic/gin"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

type adminActionRequest struct {
	Action string `json:"action"`
	UserID string `json:"userId"`
}

// requireAdmin re-derives the caller's privilege from the profiles
// table. The UI hides admin actions from non-admins, but this is the
// trust boundary: a direct caller with a valid token still has to be
// an admin in trusted storage.
func requireAdmin(c *gin.Context) (string, bool) {
	callerID := c.GetString("user_id")
	if callerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		return "", false
	}

	isAdmin, err := profiles.IsAdmin(database.DB, callerID)
	if err != nil {
		log.Println("❌ Admin check failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Admin verification failed"})
		return "", false
	}
	if !isAdmin {
		log.Println("⚠️ Non-admin user attempted admin action:", callerID)
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: Admin role required"})
		return "", false
	}
	return callerID, true
}

// AdminActions approves or rejects a target artist profile. Approve is
// idempotent; reject hard-deletes and cascades to the target's
// artworks, and rejecting an already-deleted target is a no-op
// success (the concurrent-reject race is benign).
//
// POST /functions/admin-actions
func AdminActions(c *gin.Context) {
	callerID, ok := requireAdmin(c)
	if !ok {
		return
	}

	var req adminActionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Action != ActionApprove && req.Action != ActionReject {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
		return
	}

	log.Printf("Admin %s performing %s on user %s", callerID, req.Action, req.UserID)

	var rows int64
	var err error
	switch req.Action {
	case ActionApprove:
		rows, err = profiles.Approve(database.DB, req.UserID)
	case ActionReject:
		rows, err = profiles.Reject(c.Request.Context(), database.DB, storage.Artworks, req.UserID)
	}

	if err != nil {
		log.Printf("❌ Error performing %s: %v", req.Action, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to %s user", req.Action)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"action":  req.Action,
		"userId":  req.UserID,
		"result":  gin.H{"rows_affected": rows},
	})
}

// GET /admin/pending-artists
func ListPendingArtists(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	var pending []profiles.Profile
	err := database.DB.
		Where("role = ? AND is_approved = ?", profiles.RoleArtist, false).
		Order("created_at DESC").
		Find(&pending).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pending artists"})
		return
	}

	c.JSON(http.StatusOK, pending)
}

// GET /admin/pending-artworks
func ListPendingArtworks(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	var pending []works.Artwork
	err := database.DB.
		Where("status = ?", works.StatusPending).
		Order("created_at DESC").
		Find(&pending).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pending artworks"})
		return
	}

	c.JSON(http.StatusOK, pending)
}

// POST /admin/artworks/:id/approve
func ApproveArtwork(c *gin.Context) {
	moderateArtwork(c, works.StatusApproved)
}

// POST /admin/artworks/:id/reject
func RejectArtwork(c *gin.Context) {
	moderateArtwork(c, works.StatusRejected)
}

// The artwork workflow only moves forward: pending to approved or
// rejected, approved to rejected. Nothing ever returns to pending and
// a rejected artwork stays rejected.
func moderateArtwork(c *gin.Context, target works.Status) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	artworkID := c.Param("id")

	var artwork works.Artwork
	if err := database.DB.Where("id = ?", artworkID).First(&artwork).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}

	if artwork.Status == target {
		// repeated moderation call, nothing to do
		c.JSON(http.StatusOK, gin.H{"success": true, "artwork": artwork})
		return
	}

	if !works.CanTransition(artwork.Status, target) {
		c.JSON(http.StatusConflict, gin.H{"error": works.ErrInvalidTransition.Error()})
		return
	}

	err := database.DB.Model(&artwork).
		Updates(map[string]interface{}{"status": target, "updated_at": time.Now()}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update artwork"})
		return
	}

	artwork.Status = target
	c.JSON(http.StatusOK, gin.H{"success": true, "artwork": artwork})
}
