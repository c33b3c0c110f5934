package media

import (
	"time"

	"github.com/google/uuid"
)

// Track belongs to exactly one Teaching and owns one audio blob.
type Track struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TeachingID uuid.UUID `gorm:"type:uuid;not null;index" json:"teaching_id"`
	Teaching   *Teaching `gorm:"constraint:OnDelete:CASCADE;foreignKey:TeachingID;references:ID" json:"-"`

	Title    string `gorm:"column:title;not null" json:"title"`
	Preacher string `gorm:"column:preacher;not null" json:"preacher"`

	AudioURL string `gorm:"column:audio_url;not null" json:"url"`
	AudioKey string `gorm:"column:audio_key;not null;index" json:"audio_key"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Track) TableName() string { return "track" }
