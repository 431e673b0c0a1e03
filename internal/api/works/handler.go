package worksapi

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"paisagem-app/database"
	"paisagem-app/internal/domain/profiles"
	"paisagem-app/internal/domain/works"
	"paisagem-app/internal/infra/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxImageSize = 5 << 20 // 5MB

var acceptedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

func mustUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// Uploading and managing artworks requires an approved artist profile,
// not just a valid token.
func mustApprovedArtist(c *gin.Context, userID string) (*profiles.Profile, bool) {
	var profile profiles.Profile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Profile not found"})
		return nil, false
	}
	if profile.Role != profiles.RoleArtist {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only artists can manage artworks"})
		return nil, false
	}
	if !profile.IsApproved {
		c.JSON(http.StatusForbidden, gin.H{"error": "Artist account is awaiting approval"})
		return nil, false
	}
	return &profile, true
}

type artworkDTO struct {
	works.Artwork
	ImageURL string `json:"image_url,omitempty"`
}

func toDTO(c *gin.Context, a works.Artwork) artworkDTO {
	dto := artworkDTO{Artwork: a}
	if storage.Artworks != nil {
		url, err := storage.Artworks.SignedURL(c.Request.Context(), a.ImagePath)
		if err != nil {
			log.Println("⚠️ Failed to sign artwork URL:", err)
		} else {
			dto.ImageURL = url
		}
	}
	return dto
}

// CreateArtwork handles the multipart upload: blob first, then the
// row. A row-insert failure after a successful upload removes the
// orphan blob best effort.
//
// POST /artworks
func CreateArtwork(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if _, ok := mustApprovedArtist(c, userID); !ok {
		return
	}

	title := c.PostForm("title")
	if len(title) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title must be at least 3 characters"})
		return
	}
	description := c.PostForm("description")

	var price *float64
	if raw := c.PostForm("price"); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil || p < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a nonnegative number"})
			return
		}
		price = &p
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image must be 5MB or smaller"})
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !acceptedImageTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only .jpg, .jpeg, .png and .webp images are supported"})
		return
	}

	imagePath := fmt.Sprintf("%s/%s_%s", userID, uuid.NewString(), filepath.Base(header.Filename))

	if err := storage.Artworks.Put(c.Request.Context(), imagePath, contentType, file); err != nil {
		log.Println("❌ Artwork upload failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	artwork := works.Artwork{
		ArtistID:    userID,
		Title:       title,
		Description: description,
		Price:       price,
		ImagePath:   imagePath,
		Status:      works.StatusPending,
	}

	if err := database.DB.Create(&artwork).Error; err != nil {
		log.Println("❌ Artwork insert failed:", err)
		if rmErr := storage.Artworks.Remove(c.Request.Context(), imagePath); rmErr != nil {
			log.Printf("⚠️ Failed to remove orphan blob %s: %v", imagePath, rmErr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save artwork"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"artwork": toDTO(c, artwork)})
}

// GET /artworks lists the caller's own submissions, newest first.
func ListOwnArtworks(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var artworks []works.Artwork
	err := database.DB.
		Where("artist_id = ?", userID).
		Order("created_at DESC").
		Find(&artworks).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks"})
		return
	}

	out := make([]artworkDTO, 0, len(artworks))
	for _, a := range artworks {
		out = append(out, toDTO(c, a))
	}
	c.JSON(http.StatusOK, out)
}

type updateArtworkRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// PUT /artworks/:id is an owner-scoped edit of the descriptive fields.
// Status and image path are not editable here.
func UpdateArtwork(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req updateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Title != nil {
		if len(*req.Title) < 3 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title must be at least 3 characters"})
			return
		}
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a nonnegative number"})
			return
		}
		updates["price"] = *req.Price
	}

	res := database.DB.Model(&works.Artwork{}).
		Where("id = ? AND artist_id = ?", c.Param("id"), userID).
		Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update artwork"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}

	var artwork works.Artwork
	if err := database.DB.Where("id = ?", c.Param("id")).First(&artwork).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artwork"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"artwork": toDTO(c, artwork)})
}

// DELETE /artworks/:id: the row goes first, inside a transaction
// with the ownership check; the blob delete afterwards is best effort
// and only logged on failure. A failed blob delete leaves an orphan
// object, never an orphan row.
func DeleteArtwork(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var imagePath string
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var artwork works.Artwork
		if err := tx.Where("id = ? AND artist_id = ?", c.Param("id"), userID).First(&artwork).Error; err != nil {
			return err
		}
		imagePath = artwork.ImagePath
		return tx.Delete(&artwork).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete artwork"})
		return
	}

	if storage.Artworks != nil {
		if rmErr := storage.Artworks.Remove(c.Request.Context(), imagePath); rmErr != nil {
			log.Printf("⚠️ Failed to remove artwork blob %s: %v", imagePath, rmErr)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
