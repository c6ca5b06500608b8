package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/binder-binFinder/binder-back-end/internal/api/dto"
	"github.com/binder-binFinder/binder-back-end/internal/api/repository"
	"github.com/binder-binFinder/binder-back-end/internal/api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// RegisterRoutes registers comment-related routes.
// public expects OptionalAuth middleware, authed expects Auth middleware.
func (h *CommentHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/bins/:bin_id/comments", h.List)
	public.GET("/comments/:id", h.GetDetail)

	authed.POST("/bins/:bin_id/comments", h.Create)
	authed.PATCH("/comments/:id", h.Modify)
	authed.DELETE("/comments/:id", h.Delete)
	authed.POST("/comments/:id/likes", h.Like)
	authed.DELETE("/comments/:id/likes", h.Unlike)
	authed.POST("/comments/:id/dislikes", h.Dislike)
	authed.DELETE("/comments/:id/dislikes", h.Undislike)
}

// Create creates a new comment on a bin
// POST /api/bins/:bin_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	binID, err := strconv.ParseInt(c.Param("bin_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bin id"})
		return
	}

	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	commentID, err := h.commentService.CreateComment(c.Request.Context(), memberID, binID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateCommentResponse{CommentID: commentID})
}

// Modify updates the content of the caller's own comment
// PATCH /api/comments/:id
func (h *CommentHandler) Modify(c *gin.Context) {
	commentID, ok := commentIDParam(c)
	if !ok {
		return
	}
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}

	var req dto.ModifyCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.commentService.ModifyComment(c.Request.Context(), memberID, commentID, req.Content); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete soft-deletes the caller's own comment
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := commentIDParam(c)
	if !ok {
		return
	}
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), memberID, commentID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetDetail retrieves a comment; viewer flags only for authenticated callers
// GET /api/comments/:id
func (h *CommentHandler) GetDetail(c *gin.Context) {
	commentID, ok := commentIDParam(c)
	if !ok {
		return
	}

	detail, err := h.commentService.GetCommentDetail(c.Request.Context(), optionalMemberID(c), commentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// List retrieves one page of comments for a bin
// GET /api/bins/:bin_id/comments?sort=LIKE_COUNT_DESC&last_comment_id=42&last_like_count=7
func (h *CommentHandler) List(c *gin.Context) {
	binID, err := strconv.ParseInt(c.Param("bin_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bin id"})
		return
	}

	lastCommentID, ok := optionalInt64Query(c, "last_comment_id")
	if !ok {
		return
	}
	lastLikeCount, ok := optionalInt64Query(c, "last_like_count")
	if !ok {
		return
	}

	sort, err := repository.ParseSort(c.DefaultQuery("sort", repository.SortCreatedAtDesc), lastCommentID, lastLikeCount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	details, err := h.commentService.GetCommentDetails(c.Request.Context(), optionalMemberID(c), binID, sort)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// Like adds the caller's like
// POST /api/comments/:id/likes
func (h *CommentHandler) Like(c *gin.Context) {
	h.react(c, h.commentService.CreateCommentLike)
}

// Unlike removes the caller's like
// DELETE /api/comments/:id/likes
func (h *CommentHandler) Unlike(c *gin.Context) {
	h.react(c, h.commentService.DeleteCommentLike)
}

// Dislike adds the caller's dislike
// POST /api/comments/:id/dislikes
func (h *CommentHandler) Dislike(c *gin.Context) {
	h.react(c, h.commentService.CreateCommentDislike)
}

// Undislike removes the caller's dislike
// DELETE /api/comments/:id/dislikes
func (h *CommentHandler) Undislike(c *gin.Context) {
	h.react(c, h.commentService.DeleteCommentDislike)
}

func (h *CommentHandler) react(c *gin.Context, op func(ctx context.Context, memberID string, commentID int64) error) {
	commentID, ok := commentIDParam(c)
	if !ok {
		return
	}
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}

	if err := op(c.Request.Context(), memberID, commentID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func commentIDParam(c *gin.Context) (int64, bool) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return 0, false
	}
	return commentID, true
}

func currentMemberID(c *gin.Context) (string, bool) {
	memberID, exists := c.Get("memberID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "member not authenticated"})
		return "", false
	}
	return memberID.(string), true
}

// optionalMemberID returns the authenticated member id or nil for anonymous
// viewers, so read endpoints can serve both.
func optionalMemberID(c *gin.Context) *string {
	memberID, exists := c.Get("memberID")
	if !exists {
		return nil
	}
	id := memberID.(string)
	return &id
}

func optionalInt64Query(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return nil, false
	}
	return &value, true
}

// respondError maps domain errors to HTTP statuses. Anything outside the
// taxonomy is an infrastructure failure.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrContentTooLong),
		errors.Is(err, service.ErrCurseContent),
		errors.Is(err, repository.ErrInvalidCursor):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrBinNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotWriter):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyDeleted),
		errors.Is(err, service.ErrAlreadyLiked),
		errors.Is(err, service.ErrAlreadyDisliked),
		errors.Is(err, service.ErrNotLiked),
		errors.Is(err, service.ErrNotDisliked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
