package dto

import (
	"time"

	"github.com/binder-binFinder/binder-back-end/internal/api/models"
)

// CreateCommentDTO for creating a comment
type CreateCommentDTO struct {
	Content string `json:"content" binding:"required"`
}

// ModifyCommentDTO for modifying a comment
type ModifyCommentDTO struct {
	Content string `json:"content" binding:"required"`
}

// CreateCommentResponse returns the id assigned to a new comment
type CreateCommentResponse struct {
	CommentID int64 `json:"comment_id"`
}

// CommentInfoForMember carries the viewer-specific flags. It is only
// populated for authenticated viewers; anonymous readers get null.
type CommentInfoForMember struct {
	IsOwner    bool `json:"is_owner"`
	IsLiked    bool `json:"is_liked"`
	IsDisliked bool `json:"is_disliked"`
}

// CommentDetail for returning comment information
type CommentDetail struct {
	CommentID    int64                 `json:"comment_id"`
	BinID        int64                 `json:"bin_id"`
	CreatedAt    time.Time             `json:"created_at"`
	Writer       string                `json:"writer"`
	Content      string                `json:"content"`
	LikeCount    int64                 `json:"like_count"`
	DislikeCount int64                 `json:"dislike_count"`
	Info         *CommentInfoForMember `json:"member_info,omitempty"`
}

// FromModelToCommentDetail converts a Comment model to a CommentDetail DTO
func FromModelToCommentDetail(comment *models.Comment, info *CommentInfoForMember) *CommentDetail {
	return &CommentDetail{
		CommentID:    comment.ID,
		BinID:        comment.BinID,
		CreatedAt:    comment.CreatedAt,
		Writer:       comment.Member.Nickname,
		Content:      comment.Content,
		LikeCount:    comment.LikeCount,
		DislikeCount: comment.DislikeCount,
		Info:         info,
	}
}
