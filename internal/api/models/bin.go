package models

import "time"

// Bin is the location record comments attach to. Its own moderation
// workflow lives outside this service; we only need existence checks.
type Bin struct {
	ID        int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string     `json:"title" gorm:"not null"`
	Address   string     `json:"address" gorm:"not null"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (Bin) TableName() string {
	return "bins"
}
