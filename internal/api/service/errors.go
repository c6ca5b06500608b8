package service

import "errors"

// Domain errors surfaced to the calling layer. Handlers translate these to
// HTTP status codes with errors.Is; anything not listed here is treated as
// an infrastructure failure.
var (
	// validation
	ErrContentTooLong = errors.New("comment content must not exceed 60 characters")
	ErrCurseContent   = errors.New("comment content contains objectionable language")

	// not found
	ErrCommentNotFound = errors.New("comment not found")
	ErrBinNotFound     = errors.New("bin not found")

	// forbidden
	ErrNotWriter = errors.New("only the writer can modify or delete a comment")

	// state conflicts, user-correctable and never coerced to a no-op
	ErrAlreadyDeleted  = errors.New("comment is already deleted")
	ErrAlreadyLiked    = errors.New("comment is already liked")
	ErrAlreadyDisliked = errors.New("comment is already disliked")
	ErrNotLiked        = errors.New("comment has not been liked")
	ErrNotDisliked     = errors.New("comment has not been disliked")
)
