package works

import (
	"time"
)

type Artwork struct {
	ID       string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ArtistID string `gorm:"type:uuid;not null;index:idx_artworks_artist" json:"artist_id"`

	Title       string   `gorm:"not null" json:"title"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`

	// Object key in the artworks bucket, set once at upload.
	ImagePath string `gorm:"not null" json:"image_path"`

	Status Status `gorm:"type:varchar(20);not null;index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
