package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// PageSize is the fixed page size for comment listings.
const PageSize = 20

// Sort order identifiers as they appear on the wire.
const (
	SortCreatedAtDesc = "CREATED_AT_DESC"
	SortLikeCountDesc = "LIKE_COUNT_DESC"
)

var ErrInvalidCursor = errors.New(
	"for LIKE_COUNT_DESC, last_comment_id and last_like_count must be provided together or not at all")

// CommentSort is a closed set of sort orders, each carrying its own cursor
// shape. A LIKE_COUNT_DESC query physically cannot hold a bare id cursor.
type CommentSort interface {
	scope(db *gorm.DB) *gorm.DB
}

// CreatedAtDesc pages newest-first. Comment ids are assigned monotonically,
// so id order and creation order coincide and the id is the whole cursor.
type CreatedAtDesc struct {
	LastCommentID *int64
}

func (s CreatedAtDesc) scope(db *gorm.DB) *gorm.DB {
	if s.LastCommentID != nil {
		db = db.Where("id < ?", *s.LastCommentID)
	}
	return db.Order("id DESC")
}

// LikeCursor is the compound resumption point for LikeCountDesc: the last
// item of the previous page identified by both its id and its like count.
type LikeCursor struct {
	LastCommentID int64
	LastLikeCount int64
}

// LikeCountDesc pages by descending like count, ties broken by descending
// id. The cursor is a snapshot boundary only; a comment whose like count
// changes between page fetches may cross the boundary.
type LikeCountDesc struct {
	Cursor *LikeCursor
}

func (s LikeCountDesc) scope(db *gorm.DB) *gorm.DB {
	if c := s.Cursor; c != nil {
		db = db.Where("like_count < ? OR (like_count = ? AND id < ?)",
			c.LastLikeCount, c.LastLikeCount, c.LastCommentID)
	}
	return db.Order("like_count DESC, id DESC")
}

// ParseSort builds the validated sort variant from raw query values.
// CREATED_AT_DESC ignores a stray like-count cursor value.
func ParseSort(order string, lastCommentID, lastLikeCount *int64) (CommentSort, error) {
	switch order {
	case "", SortCreatedAtDesc:
		return CreatedAtDesc{LastCommentID: lastCommentID}, nil
	case SortLikeCountDesc:
		if (lastCommentID == nil) != (lastLikeCount == nil) {
			return nil, ErrInvalidCursor
		}
		if lastCommentID == nil {
			return LikeCountDesc{}, nil
		}
		return LikeCountDesc{Cursor: &LikeCursor{
			LastCommentID: *lastCommentID,
			LastLikeCount: *lastLikeCount,
		}}, nil
	default:
		return nil, fmt.Errorf("unknown sort order %q: %w", order, ErrInvalidCursor)
	}
}
