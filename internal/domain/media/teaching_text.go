package media

import (
	"time"

	"github.com/google/uuid"
)

// TeachingText is a written teaching; it never owns a blob.
type TeachingText struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title      string    `gorm:"column:title;not null" json:"title"`
	PastorName string    `gorm:"column:pastor_name;not null" json:"pastorName"`
	Content    string    `gorm:"column:content;not null;type:text" json:"content"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (TeachingText) TableName() string { return "teaching_text" }
