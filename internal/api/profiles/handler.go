package profilesapi

import (
	"log"
	"net/http"

	"paisagem-app/database"
	"paisagem-app/internal/domain/profiles"

	"github.com/gin-gonic/gin"
)

type createProfileRequest struct {
	User *profiles.IdentityPayload `json:"user"`
}

// CreateProfile is the provisioning endpoint invoked once per signup,
// and again on retry (the upsert makes that safe). Every failure is
// a structured 400; a partial profile is never returned.
//
// POST /functions/create-profile
func CreateProfile(c *gin.Context) {
	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON body"})
		return
	}

	profile, err := profiles.Provision(database.DB, req.User)
	if err != nil {
		log.Println("❌ Profile provisioning failed:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}
