package usersapi

import (
	"errors"
	"net/http"

	"paisagem-app/database"
	"paisagem-app/internal/domain/dashboard"
	"paisagem-app/internal/domain/identity"
	"paisagem-app/internal/domain/profiles"
	"paisagem-app/internal/domain/works"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /me returns the resolved (identity, profile) pair. A missing profile
// is not an error here: the client needs to see the gap to know it
// should retry provisioning.
func GetCurrentUser(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user identity.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var profile *profiles.Profile
	var p profiles.Profile
	err := database.DB.Where("user_id = ?", userID).First(&p).Error
	switch {
	case err == nil:
		profile = &p
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = nil
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"profile": profile,
	})
}

// GetDashboard resolves the caller's profile and dispatches through
// the role router. Exactly one view comes back; a missing profile is
// its own 404 state and never falls through to a role's dashboard.
//
// GET /dashboard
func GetDashboard(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var profile *profiles.Profile
	var p profiles.Profile
	err := database.DB.Where("user_id = ?", userID).First(&p).Error
	switch {
	case err == nil:
		profile = &p
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = nil
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	view := dashboard.Resolve(false, profile)

	switch view {
	case dashboard.ViewNoProfile:
		c.JSON(http.StatusNotFound, gin.H{
			"view":  view.String(),
			"error": "Profile not found",
		})

	case dashboard.ViewArtist:
		var artworks []works.Artwork
		if err := database.DB.
			Where("artist_id = ?", userID).
			Order("created_at DESC").
			Find(&artworks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"view":     view.String(),
			"profile":  profile,
			"approved": profile.IsApproved,
			"artworks": artworks,
		})

	case dashboard.ViewAdmin:
		var pendingArtists int64
		var pendingArtworks int64
		database.DB.Model(&profiles.Profile{}).
			Where("role = ? AND is_approved = ?", profiles.RoleArtist, false).
			Count(&pendingArtists)
		database.DB.Model(&works.Artwork{}).
			Where("status = ?", works.StatusPending).
			Count(&pendingArtworks)
		c.JSON(http.StatusOK, gin.H{
			"view":             view.String(),
			"profile":          profile,
			"pending_artists":  pendingArtists,
			"pending_artworks": pendingArtworks,
		})

	default:
		// buyer view, also where any unrecognized stored role lands
		c.JSON(http.StatusOK, gin.H{
			"view":    dashboard.ViewBuyer.String(),
			"profile": profile,
		})
	}
}
