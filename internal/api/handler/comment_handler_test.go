package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/binder-binFinder/binder-back-end/internal/api/dto"
	"github.com/binder-binFinder/binder-back-end/internal/api/handler"
	"github.com/binder-binFinder/binder-back-end/internal/api/repository"
	"github.com/binder-binFinder/binder-back-end/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testMemberID = "11111111-1111-1111-1111-111111111111"

// --- MOCK SERVICE ---

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) CreateComment(ctx context.Context, memberID string, binID int64, content string) (int64, error) {
	args := m.Called(ctx, memberID, binID, content)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentService) ModifyComment(ctx context.Context, memberID string, commentID int64, content string) error {
	args := m.Called(ctx, memberID, commentID, content)
	return args.Error(0)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, memberID string, commentID int64) error {
	args := m.Called(ctx, memberID, commentID)
	return args.Error(0)
}

func (m *MockCommentService) GetCommentDetail(ctx context.Context, viewerID *string, commentID int64) (*dto.CommentDetail, error) {
	args := m.Called(ctx, viewerID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentDetail), args.Error(1)
}

func (m *MockCommentService) GetCommentDetails(ctx context.Context, viewerID *string, binID int64, sort repository.CommentSort) ([]dto.CommentDetail, error) {
	args := m.Called(ctx, viewerID, binID, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CommentDetail), args.Error(1)
}

func (m *MockCommentService) CreateCommentLike(ctx context.Context, memberID string, commentID int64) error {
	args := m.Called(ctx, memberID, commentID)
	return args.Error(0)
}

func (m *MockCommentService) DeleteCommentLike(ctx context.Context, memberID string, commentID int64) error {
	args := m.Called(ctx, memberID, commentID)
	return args.Error(0)
}

func (m *MockCommentService) CreateCommentDislike(ctx context.Context, memberID string, commentID int64) error {
	args := m.Called(ctx, memberID, commentID)
	return args.Error(0)
}

func (m *MockCommentService) DeleteCommentDislike(ctx context.Context, memberID string, commentID int64) error {
	args := m.Called(ctx, memberID, commentID)
	return args.Error(0)
}

// --- SETUP ---

// fakeAuth stands in for the JWT middleware and injects the member id.
func fakeAuth(c *gin.Context) {
	c.Set("memberID", testMemberID)
	c.Next()
}

func setupRouter(mockService *MockCommentService, authed bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	public := r.Group("/api")
	authedGroup := r.Group("/api")
	if authed {
		public.Use(fakeAuth)
		authedGroup.Use(fakeAuth)
	}

	h := handler.NewCommentHandler(mockService)
	h.RegisterRoutes(public, authedGroup)
	return r
}

func performRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// --- TESTS ---

func TestCreateComment_Created(t *testing.T) {
	mockService := new(MockCommentService)
	mockService.On("CreateComment", mock.Anything, testMemberID, int64(3), "좋은 위치네요").
		Return(int64(42), nil)
	r := setupRouter(mockService, true)

	w := performRequest(r, http.MethodPost, "/api/bins/3/comments", dto.CreateCommentDTO{Content: "좋은 위치네요"})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp dto.CreateCommentResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 42, resp.CommentID)
	mockService.AssertExpectations(t)
}

func TestCreateComment_Unauthenticated(t *testing.T) {
	mockService := new(MockCommentService)
	r := setupRouter(mockService, false)

	w := performRequest(r, http.MethodPost, "/api/bins/3/comments", dto.CreateCommentDTO{Content: "댓글"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "CreateComment")
}

func TestCreateComment_TooLong(t *testing.T) {
	mockService := new(MockCommentService)
	mockService.On("CreateComment", mock.Anything, testMemberID, int64(3), mock.Anything).
		Return(int64(0), service.ErrContentTooLong)
	r := setupRouter(mockService, true)

	w := performRequest(r, http.MethodPost, "/api/bins/3/comments", dto.CreateCommentDTO{Content: "..."})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateComment_MissingContent(t *testing.T) {
	mockService := new(MockCommentService)
	r := setupRouter(mockService, true)

	w := performRequest(r, http.MethodPost, "/api/bins/3/comments", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateComment")
}

func TestCreateComment_InvalidBinID(t *testing.T) {
	mockService := new(MockCommentService)
	r := setupRouter(mockService, true)

	w := performRequest(r, http.MethodPost, "/api/bins/abc/comments", dto.CreateCommentDTO{Content: "댓글"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestModifyComment_NoContent(t *testing.T) {
	mockService := new(MockCommentService)
	mockService.On("ModifyComment", mock.Anything, testMemberID, int64(42), "수정").Return(nil)
	r := setupRouter(mockService, true)

	w := performRequest(r, http.MethodPatch, "/api/comments/42", dto.ModifyCommentDTO{Content: "수정"})

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestModifyComment_Forbidden(t *testing.T) {
	mockService := new(MockCommentService)
	mockService.On("ModifyComment", mock.Anything, testMemberID, int64(42), "수정").
		Return(service.ErrNotWriter)
	r := setupRouter(mockService, true)

	w := performRequest(r, http.MethodPatch, "/api/comments/42", dto.ModifyCommentDTO{Content: "수정"})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteComment_Conflict(t *testing.T) {
	mockService := new(MockCommentService)
	mockService.On("DeleteComment", mock.Anything, testMemberID, int64(42)).
		Return(service.ErrAlreadyDeleted)
	r := setupRouter(mockService, true)

	w := performRequest(r, http.MethodDelete, "/api/comments/42", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetDetail_Anonymous(t *testing.T) {
	mockService := new(MockCommentService)
	detail := &dto.CommentDetail{
		CommentID: 42,
		BinID:     3,
		CreatedAt: time.Now(),
		Writer:    "member",
		Content:   "댓글",
		LikeCount: 5,
	}
	mockService.On("GetCommentDetail", mock.Anything, (*string)(nil), int64(42)).
		Return(detail, nil)
	r := setupRouter(mockService, false)

	w := performRequest(r, http.MethodGet, "/api/comments/42", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.CommentDetail
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 42, resp.CommentID)
	assert.Nil(t, resp.Info)
	mockService.AssertExpectations(t)
}

func TestGetDetail_NotFound(t *testing.T) {
	mockService := new(MockCommentService)
	mockService.On("GetCommentDetail", mock.Anything, mock.Anything, int64(42)).
		Return(nil, service.ErrCommentNotFound)
	r := setupRouter(mockService, false)

	w := performRequest(r, http.MethodGet, "/api/comments/42", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestList_DefaultSort(t *testing.T) {
	mockService := new(MockCommentService)
	mockService.On("GetCommentDetails", mock.Anything, (*string)(nil), int64(3), repository.CreatedAtDesc{}).
		Return([]dto.CommentDetail{}, nil)
	r := setupRouter(mockService, false)

	w := performRequest(r, http.MethodGet, "/api/bins/3/comments", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestList_LikeCountSortWithCursor(t *testing.T) {
	mockService := new(MockCommentService)
	expected := repository.LikeCountDesc{Cursor: &repository.LikeCursor{LastCommentID: 42, LastLikeCount: 7}}
	mockService.On("GetCommentDetails", mock.Anything, (*string)(nil), int64(3), expected).
		Return([]dto.CommentDetail{}, nil)
	r := setupRouter(mockService, false)

	w := performRequest(r, http.MethodGet,
		"/api/bins/3/comments?sort=LIKE_COUNT_DESC&last_comment_id=42&last_like_count=7", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestList_PartialCursorRejected(t *testing.T) {
	mockService := new(MockCommentService)
	r := setupRouter(mockService, false)

	w := performRequest(r, http.MethodGet,
		"/api/bins/3/comments?sort=LIKE_COUNT_DESC&last_comment_id=42", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetCommentDetails")
}

func TestList_BadCursorValue(t *testing.T) {
	mockService := new(MockCommentService)
	r := setupRouter(mockService, false)

	w := performRequest(r, http.MethodGet, "/api/bins/3/comments?last_comment_id=abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLike_NoContent(t *testing.T) {
	mockService := new(MockCommentService)
	mockService.On("CreateCommentLike", mock.Anything, testMemberID, int64(42)).Return(nil)
	r := setupRouter(mockService, true)

	w := performRequest(r, http.MethodPost, "/api/comments/42/likes", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestLike_AlreadyLiked(t *testing.T) {
	mockService := new(MockCommentService)
	mockService.On("CreateCommentLike", mock.Anything, testMemberID, int64(42)).
		Return(service.ErrAlreadyLiked)
	r := setupRouter(mockService, true)

	w := performRequest(r, http.MethodPost, "/api/comments/42/likes", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUnlike_NotLiked(t *testing.T) {
	mockService := new(MockCommentService)
	mockService.On("DeleteCommentLike", mock.Anything, testMemberID, int64(42)).
		Return(service.ErrNotLiked)
	r := setupRouter(mockService, true)

	w := performRequest(r, http.MethodDelete, "/api/comments/42/likes", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDislike_UnknownErrorIsOpaque(t *testing.T) {
	mockService := new(MockCommentService)
	mockService.On("CreateCommentDislike", mock.Anything, testMemberID, int64(42)).
		Return(errors.New("connection reset"))
	r := setupRouter(mockService, true)

	w := performRequest(r, http.MethodPost, "/api/comments/42/dislikes", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}
