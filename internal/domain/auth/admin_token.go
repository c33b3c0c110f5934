package auth

import (
	"time"

	"github.com/google/uuid"
)

type AdminToken struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AdminID uuid.UUID `gorm:"type:uuid;not null;index" json:"admin_id"`
	Admin   *Admin    `gorm:"constraint:OnDelete:CASCADE;foreignKey:AdminID;references:ID" json:"-"`

	AccessToken  string    `gorm:"column:access_token;not null;index" json:"-"`
	RefreshToken string    `gorm:"column:refresh_token;not null" json:"-"`
	ExpiresAt    time.Time `gorm:"column:expires_at;not null" json:"expires_at"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (AdminToken) TableName() string { return "admin_token" }
