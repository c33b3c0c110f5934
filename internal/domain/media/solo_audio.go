package media

import (
	"time"

	"github.com/google/uuid"
)

// SoloAudio is a standalone audio record with no parent.
type SoloAudio struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title    string    `gorm:"column:title;not null" json:"title"`
	Preacher string    `gorm:"column:preacher;not null" json:"preacher"`

	AudioURL string `gorm:"column:audio_url;not null" json:"url"`
	AudioKey string `gorm:"column:audio_key;not null;index" json:"audio_key"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (SoloAudio) TableName() string { return "solo_audio" }
