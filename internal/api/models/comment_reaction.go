package models

import "time"

type ReactionKind string

const (
	ReactionLiked    ReactionKind = "LIKED"
	ReactionDisliked ReactionKind = "DISLIKED"
)

// CommentReaction holds a member's stance toward one comment. The composite
// primary key doubles as the uniqueness constraint: two concurrent
// first-time likes from the same member cannot both insert. "No reaction"
// is the absence of the row.
type CommentReaction struct {
	MemberID  string       `json:"member_id" gorm:"primaryKey;type:uuid"`
	CommentID int64        `json:"comment_id" gorm:"primaryKey;index"`
	Kind      ReactionKind `json:"kind" gorm:"type:varchar(16);not null"`
	CreatedAt time.Time    `json:"created_at" gorm:"autoCreateTime"`
}

func (CommentReaction) TableName() string {
	return "comment_reactions"
}
