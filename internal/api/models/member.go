package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Member struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Nickname  string    `gorm:"uniqueIndex;not null" json:"nickname"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Role      string    `gorm:"default:'user';not null" json:"role"` // "user" or "admin"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a Member
func (member *Member) BeforeCreate(tx *gorm.DB) (err error) {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	return
}

func (Member) TableName() string {
	return "members"
}
