package media

import (
	"time"

	"github.com/google/uuid"
)

// Teaching is an audio teaching card. CoverURL/CoverKey are either both set
// (an owned image blob) or both empty.
type Teaching struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title    string    `gorm:"column:title;not null" json:"title"`
	Preacher string    `gorm:"column:preacher;not null" json:"preacher"`
	Category string    `gorm:"column:category;not null" json:"category"`

	CoverURL string `gorm:"column:cover_url" json:"cover,omitempty"`
	CoverKey string `gorm:"column:cover_key" json:"cover_key,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Teaching) TableName() string { return "teaching" }

// TeachingWithTrackCount is the list projection: trackCount is computed at
// read time against the track table, never stored.
type TeachingWithTrackCount struct {
	Teaching
	TrackCount int64 `gorm:"column:track_count" json:"trackCount"`
}
