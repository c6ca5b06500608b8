package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/binder-binFinder/binder-back-end/internal/api/dto"
	"github.com/binder-binFinder/binder-back-end/internal/api/models"
	"github.com/binder-binFinder/binder-back-end/internal/api/repository"
	"github.com/binder-binFinder/binder-back-end/internal/filtering"

	"gorm.io/gorm"
)

type CommentService interface {
	CreateComment(ctx context.Context, memberID string, binID int64, content string) (int64, error)
	ModifyComment(ctx context.Context, memberID string, commentID int64, content string) error
	DeleteComment(ctx context.Context, memberID string, commentID int64) error
	GetCommentDetail(ctx context.Context, viewerID *string, commentID int64) (*dto.CommentDetail, error)
	GetCommentDetails(ctx context.Context, viewerID *string, binID int64, sort repository.CommentSort) ([]dto.CommentDetail, error)
	CreateCommentLike(ctx context.Context, memberID string, commentID int64) error
	DeleteCommentLike(ctx context.Context, memberID string, commentID int64) error
	CreateCommentDislike(ctx context.Context, memberID string, commentID int64) error
	DeleteCommentDislike(ctx context.Context, memberID string, commentID int64) error
}

type commentService struct {
	comments  repository.CommentRepository
	reactions repository.ReactionRepository
	bins      repository.BinRepository
	tx        repository.TxManager
	checker   filtering.CurseChecker
}

func NewCommentService(
	comments repository.CommentRepository,
	reactions repository.ReactionRepository,
	bins repository.BinRepository,
	tx repository.TxManager,
	checker filtering.CurseChecker,
) CommentService {
	return &commentService{
		comments:  comments,
		reactions: reactions,
		bins:      bins,
		tx:        tx,
		checker:   checker,
	}
}

// CreateComment validates and persists a new comment with zero counters,
// returning its id.
func (s *commentService) CreateComment(ctx context.Context, memberID string, binID int64, content string) (int64, error) {
	if err := s.validateContent(ctx, content); err != nil {
		return 0, err
	}

	if _, err := s.bins.GetByID(ctx, binID); err != nil {
		return 0, orNotFound(err, ErrBinNotFound)
	}

	comment := &models.Comment{
		MemberID: memberID,
		BinID:    binID,
		Content:  content,
	}
	err := s.tx.Do(ctx, func(r repository.Repos) error {
		return r.Comments.Create(ctx, comment)
	})
	if err != nil {
		return 0, err
	}
	return comment.ID, nil
}

// ModifyComment replaces the content of the caller's own comment. Counters
// and timestamps are untouched.
func (s *commentService) ModifyComment(ctx context.Context, memberID string, commentID int64, content string) error {
	if err := s.validateContent(ctx, content); err != nil {
		return err
	}

	return s.tx.Do(ctx, func(r repository.Repos) error {
		comment, err := r.Comments.LockByID(ctx, commentID)
		if err != nil {
			return orNotFound(err, ErrCommentNotFound)
		}
		if comment.IsDeleted() {
			return ErrCommentNotFound
		}
		if comment.MemberID != memberID {
			return ErrNotWriter
		}
		return r.Comments.UpdateContent(ctx, commentID, content)
	})
}

// DeleteComment soft-deletes the caller's own comment. Terminal: there is
// no undelete, and a second delete is a conflict.
func (s *commentService) DeleteComment(ctx context.Context, memberID string, commentID int64) error {
	return s.tx.Do(ctx, func(r repository.Repos) error {
		comment, err := r.Comments.LockByID(ctx, commentID)
		if err != nil {
			return orNotFound(err, ErrCommentNotFound)
		}
		if comment.MemberID != memberID {
			return ErrNotWriter
		}
		if comment.IsDeleted() {
			return ErrAlreadyDeleted
		}
		return r.Comments.SoftDelete(ctx, commentID, time.Now())
	})
}

// GetCommentDetail retrieves one comment. The viewer-specific flags are
// only present when viewerID is.
func (s *commentService) GetCommentDetail(ctx context.Context, viewerID *string, commentID int64) (*dto.CommentDetail, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, orNotFound(err, ErrCommentNotFound)
	}

	if viewerID == nil {
		return dto.FromModelToCommentDetail(comment, nil), nil
	}

	info := &dto.CommentInfoForMember{
		IsOwner: comment.MemberID == *viewerID,
	}
	reaction, err := s.reactions.Get(ctx, *viewerID, commentID)
	switch {
	case err == nil:
		info.IsLiked = reaction.Kind == models.ReactionLiked
		info.IsDisliked = reaction.Kind == models.ReactionDisliked
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no stance
	default:
		return nil, err
	}
	return dto.FromModelToCommentDetail(comment, info), nil
}

// GetCommentDetails retrieves one page of comments for a bin, at most
// repository.PageSize items, soft-deleted comments excluded.
func (s *commentService) GetCommentDetails(ctx context.Context, viewerID *string, binID int64, sort repository.CommentSort) ([]dto.CommentDetail, error) {
	if _, err := s.bins.GetByID(ctx, binID); err != nil {
		return nil, orNotFound(err, ErrBinNotFound)
	}

	comments, err := s.comments.ListByBin(ctx, binID, sort, repository.PageSize)
	if err != nil {
		return nil, err
	}

	var kinds map[int64]models.ReactionKind
	if viewerID != nil {
		ids := make([]int64, 0, len(comments))
		for _, comment := range comments {
			ids = append(ids, comment.ID)
		}
		kinds, err = s.reactions.GetKindsForComments(ctx, *viewerID, ids)
		if err != nil {
			return nil, err
		}
	}

	details := make([]dto.CommentDetail, 0, len(comments))
	for i := range comments {
		comment := &comments[i]
		var info *dto.CommentInfoForMember
		if viewerID != nil {
			kind := kinds[comment.ID]
			info = &dto.CommentInfoForMember{
				IsOwner:    comment.MemberID == *viewerID,
				IsLiked:    kind == models.ReactionLiked,
				IsDisliked: kind == models.ReactionDisliked,
			}
		}
		details = append(details, *dto.FromModelToCommentDetail(comment, info))
	}
	return details, nil
}

// CreateCommentLike applies the NONE->LIKED or DISLIKED->LIKED transition.
func (s *commentService) CreateCommentLike(ctx context.Context, memberID string, commentID int64) error {
	return s.withRetry(ctx, func(r repository.Repos) error {
		if err := lockLiveComment(ctx, r, commentID); err != nil {
			return err
		}
		reaction, err := r.Reactions.Get(ctx, memberID, commentID)
		switch {
		case err == nil && reaction.Kind == models.ReactionLiked:
			return ErrAlreadyLiked
		case err == nil:
			// DISLIKED -> LIKED
			if err := r.Reactions.UpdateKind(ctx, memberID, commentID, models.ReactionLiked); err != nil {
				return err
			}
			return r.Comments.AdjustCounts(ctx, commentID, 1, -1)
		case errors.Is(err, gorm.ErrRecordNotFound):
			// NONE -> LIKED
			if err := r.Reactions.Create(ctx, &models.CommentReaction{
				MemberID:  memberID,
				CommentID: commentID,
				Kind:      models.ReactionLiked,
			}); err != nil {
				return err
			}
			return r.Comments.AdjustCounts(ctx, commentID, 1, 0)
		default:
			return err
		}
	})
}

// DeleteCommentLike applies the LIKED->NONE transition.
func (s *commentService) DeleteCommentLike(ctx context.Context, memberID string, commentID int64) error {
	return s.withRetry(ctx, func(r repository.Repos) error {
		if err := lockLiveComment(ctx, r, commentID); err != nil {
			return err
		}
		reaction, err := r.Reactions.Get(ctx, memberID, commentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotLiked
		}
		if err != nil {
			return err
		}
		if reaction.Kind != models.ReactionLiked {
			return ErrNotLiked
		}
		if err := r.Reactions.Delete(ctx, memberID, commentID); err != nil {
			return err
		}
		return r.Comments.AdjustCounts(ctx, commentID, -1, 0)
	})
}

// CreateCommentDislike applies the NONE->DISLIKED or LIKED->DISLIKED transition.
func (s *commentService) CreateCommentDislike(ctx context.Context, memberID string, commentID int64) error {
	return s.withRetry(ctx, func(r repository.Repos) error {
		if err := lockLiveComment(ctx, r, commentID); err != nil {
			return err
		}
		reaction, err := r.Reactions.Get(ctx, memberID, commentID)
		switch {
		case err == nil && reaction.Kind == models.ReactionDisliked:
			return ErrAlreadyDisliked
		case err == nil:
			// LIKED -> DISLIKED
			if err := r.Reactions.UpdateKind(ctx, memberID, commentID, models.ReactionDisliked); err != nil {
				return err
			}
			return r.Comments.AdjustCounts(ctx, commentID, -1, 1)
		case errors.Is(err, gorm.ErrRecordNotFound):
			// NONE -> DISLIKED
			if err := r.Reactions.Create(ctx, &models.CommentReaction{
				MemberID:  memberID,
				CommentID: commentID,
				Kind:      models.ReactionDisliked,
			}); err != nil {
				return err
			}
			return r.Comments.AdjustCounts(ctx, commentID, 0, 1)
		default:
			return err
		}
	})
}

// DeleteCommentDislike applies the DISLIKED->NONE transition.
func (s *commentService) DeleteCommentDislike(ctx context.Context, memberID string, commentID int64) error {
	return s.withRetry(ctx, func(r repository.Repos) error {
		if err := lockLiveComment(ctx, r, commentID); err != nil {
			return err
		}
		reaction, err := r.Reactions.Get(ctx, memberID, commentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotDisliked
		}
		if err != nil {
			return err
		}
		if reaction.Kind != models.ReactionDisliked {
			return ErrNotDisliked
		}
		if err := r.Reactions.Delete(ctx, memberID, commentID); err != nil {
			return err
		}
		return r.Comments.AdjustCounts(ctx, commentID, 0, -1)
	})
}

// validateContent enforces the length limit and the curse filter. The limit
// counts characters, not bytes.
func (s *commentService) validateContent(ctx context.Context, content string) error {
	if utf8.RuneCountInString(content) > models.MaxCommentLength {
		return ErrContentTooLong
	}
	isCurse, err := s.checker.IsCurse(ctx, content)
	if err != nil {
		return err
	}
	if isCurse {
		return ErrCurseContent
	}
	return nil
}

// withRetry runs the transition once and retries a single time on a
// transient storage race. Domain errors pass through untouched.
func (s *commentService) withRetry(ctx context.Context, fn func(repository.Repos) error) error {
	err := s.tx.Do(ctx, fn)
	if err != nil && repository.IsRetryable(err) {
		err = s.tx.Do(ctx, fn)
	}
	return err
}

// lockLiveComment locks the comment row for the transaction and rejects
// missing or soft-deleted comments.
func lockLiveComment(ctx context.Context, r repository.Repos, commentID int64) error {
	comment, err := r.Comments.LockByID(ctx, commentID)
	if err != nil {
		return orNotFound(err, ErrCommentNotFound)
	}
	if comment.IsDeleted() {
		return ErrCommentNotFound
	}
	return nil
}

func orNotFound(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}
