package media

import (
	"time"

	"github.com/google/uuid"
)

// Poster ("cartaz") is the single-active record kind: after any successful
// create at most one row is live, the newest one.
type Poster struct {
	ID    uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title string    `gorm:"column:title" json:"title"`

	ImageURL string `gorm:"column:image_url;not null" json:"imageUrl"`
	ImageKey string `gorm:"column:image_key;not null;index" json:"image_key"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Poster) TableName() string { return "poster" }
