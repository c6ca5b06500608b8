package models

import "time"

// MaxCommentLength is the maximum comment length in characters (not bytes).
const MaxCommentLength = 60

type Comment struct {
	ID           int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	MemberID     string     `json:"member_id" gorm:"type:uuid;not null;index"`
	BinID        int64      `json:"bin_id" gorm:"not null;index"`
	Content      string     `json:"content" gorm:"type:varchar(60);not null"`
	LikeCount    int64      `json:"like_count" gorm:"not null;default:0"`
	DislikeCount int64      `json:"dislike_count" gorm:"not null;default:0"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	// Associations
	Member Member `json:"member,omitempty" gorm:"foreignKey:MemberID"`
	Bin    Bin    `json:"bin,omitempty" gorm:"foreignKey:BinID"`
}

func (Comment) TableName() string {
	return "comments"
}

// IsDeleted reports whether the comment was soft-deleted. Deleted rows
// persist for audit but are excluded from every read path.
func (c *Comment) IsDeleted() bool {
	return c.DeletedAt != nil
}
