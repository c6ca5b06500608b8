package repository

import (
	"context"

	"github.com/binder-binFinder/binder-back-end/internal/api/models"

	"gorm.io/gorm"
)

type ReactionRepository interface {
	Get(ctx context.Context, memberID string, commentID int64) (*models.CommentReaction, error)
	Create(ctx context.Context, reaction *models.CommentReaction) error
	UpdateKind(ctx context.Context, memberID string, commentID int64, kind models.ReactionKind) error
	Delete(ctx context.Context, memberID string, commentID int64) error
	GetKindsForComments(ctx context.Context, memberID string, commentIDs []int64) (map[int64]models.ReactionKind, error)
	CountByKind(ctx context.Context, commentID int64, kind models.ReactionKind) (int64, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Get retrieves a member's reaction to a comment, gorm.ErrRecordNotFound if absent
func (r *reactionRepository) Get(ctx context.Context, memberID string, commentID int64) (*models.CommentReaction, error) {
	var reaction models.CommentReaction
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND comment_id = ?", memberID, commentID).
		First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// Create inserts the reaction row. The composite primary key rejects a
// duplicate insert from a concurrent first-time reaction by the same member.
func (r *reactionRepository) Create(ctx context.Context, reaction *models.CommentReaction) error {
	return r.db.WithContext(ctx).Create(reaction).Error
}

// UpdateKind flips an existing reaction between LIKED and DISLIKED
func (r *reactionRepository) UpdateKind(ctx context.Context, memberID string, commentID int64, kind models.ReactionKind) error {
	return r.db.WithContext(ctx).
		Model(&models.CommentReaction{}).
		Where("member_id = ? AND comment_id = ?", memberID, commentID).
		UpdateColumn("kind", kind).Error
}

// Delete removes the reaction row; absence of the row means "no reaction"
func (r *reactionRepository) Delete(ctx context.Context, memberID string, commentID int64) error {
	return r.db.WithContext(ctx).
		Where("member_id = ? AND comment_id = ?", memberID, commentID).
		Delete(&models.CommentReaction{}).Error
}

// GetKindsForComments retrieves the member's reactions for a page of comments in one query
func (r *reactionRepository) GetKindsForComments(ctx context.Context, memberID string, commentIDs []int64) (map[int64]models.ReactionKind, error) {
	kinds := make(map[int64]models.ReactionKind, len(commentIDs))
	if len(commentIDs) == 0 {
		return kinds, nil
	}

	var reactions []models.CommentReaction
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND comment_id IN ?", memberID, commentIDs).
		Find(&reactions).Error
	if err != nil {
		return nil, err
	}

	for _, reaction := range reactions {
		kinds[reaction.CommentID] = reaction.Kind
	}
	return kinds, nil
}

// CountByKind counts active reaction rows of one kind for a comment
func (r *reactionRepository) CountByKind(ctx context.Context, commentID int64, kind models.ReactionKind) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CommentReaction{}).
		Where("comment_id = ? AND kind = ?", commentID, kind).
		Count(&count).Error
	return count, err
}
