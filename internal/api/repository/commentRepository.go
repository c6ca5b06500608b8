package repository

import (
	"context"
	"time"

	"github.com/binder-binFinder/binder-back-end/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID int64) (*models.Comment, error)
	LockByID(ctx context.Context, commentID int64) (*models.Comment, error)
	UpdateContent(ctx context.Context, commentID int64, content string) error
	SoftDelete(ctx context.Context, commentID int64, at time.Time) error
	AdjustCounts(ctx context.Context, commentID, likeDelta, dislikeDelta int64) error
	ListByBin(ctx context.Context, binID int64, sort CommentSort, limit int) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create a new comment
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetByID retrieves a live comment by its ID, soft-deleted rows excluded
func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", commentID).
		Preload("Member").
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// LockByID takes a row-level exclusive lock on the comment for the duration
// of the surrounding transaction. Reaction transitions lock first so the
// reaction-row write and the counter write are never observed independently.
// Soft-deleted rows are returned too; the caller decides how to treat them.
func (r *commentRepository) LockByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", commentID).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateContent replaces the comment text only; counters and timestamps untouched
func (r *commentRepository) UpdateContent(ctx context.Context, commentID int64, content string) error {
	return r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", commentID).
		UpdateColumn("content", content).Error
}

// SoftDelete marks the comment retired; the row persists for audit
func (r *commentRepository) SoftDelete(ctx context.Context, commentID int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", commentID).
		UpdateColumn("deleted_at", at).Error
}

// AdjustCounts applies counter deltas as SQL expressions so increments from
// concurrent transactions are never lost to a read-modify-write race.
func (r *commentRepository) AdjustCounts(ctx context.Context, commentID, likeDelta, dislikeDelta int64) error {
	updates := map[string]interface{}{}
	if likeDelta != 0 {
		updates["like_count"] = gorm.Expr("like_count + ?", likeDelta)
	}
	if dislikeDelta != 0 {
		updates["dislike_count"] = gorm.Expr("dislike_count + ?", dislikeDelta)
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", commentID).
		UpdateColumns(updates).Error
}

// ListByBin retrieves one page of live comments for a bin in the given sort order
func (r *commentRepository) ListByBin(ctx context.Context, binID int64, sort CommentSort, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	q := r.db.WithContext(ctx).
		Where("bin_id = ? AND deleted_at IS NULL", binID).
		Preload("Member")
	err := sort.scope(q).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
