package media

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Event is the flyer holder. Base fields are plain CRUD; only the
// FlyerURL/FlyerKey pair couples it to the asset store.
type Event struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Description string         `gorm:"column:description" json:"description"`
	Category    string         `gorm:"column:category" json:"category"`
	Date        datatypes.JSON `gorm:"column:date;type:jsonb" json:"date"`
	Time        string         `gorm:"column:time" json:"time"`

	FlyerURL string `gorm:"column:flyer_url" json:"flyer_url,omitempty"`
	FlyerKey string `gorm:"column:flyer_key" json:"flyer_key,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Event) TableName() string { return "event" }
