// Package inmemory implements the repository contracts against in-process
// maps guarded by a single mutex. The transaction manager serializes units
// of work the way the row lock does in Postgres, which lets service-level
// tests exercise the reaction state machine, pagination and the concurrent
// counter property without a database.
package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/binder-binFinder/binder-back-end/internal/api/models"
	"github.com/binder-binFinder/binder-back-end/internal/api/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reactionKey struct {
	memberID  string
	commentID int64
}

type Store struct {
	mu            sync.Mutex
	nextCommentID int64
	nextBinID     int64
	members       map[string]*models.Member
	bins          map[int64]*models.Bin
	comments      map[int64]*models.Comment
	reactions     map[reactionKey]*models.CommentReaction
}

func New() *Store {
	return &Store{
		members:   make(map[string]*models.Member),
		bins:      make(map[int64]*models.Bin),
		comments:  make(map[int64]*models.Comment),
		reactions: make(map[reactionKey]*models.CommentReaction),
	}
}

// AddMember seeds a member and returns it.
func (s *Store) AddMember(nickname string) *models.Member {
	s.mu.Lock()
	defer s.mu.Unlock()

	member := &models.Member{
		ID:        uuid.New().String(),
		Nickname:  nickname,
		Email:     nickname + "@email.com",
		Role:      "user",
		CreatedAt: time.Now(),
	}
	s.members[member.ID] = member
	return member
}

// AddBin seeds a bin and returns it.
func (s *Store) AddBin(title string) *models.Bin {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextBinID++
	bin := &models.Bin{
		ID:        s.nextBinID,
		Title:     title,
		Address:   "address",
		CreatedAt: time.Now(),
	}
	s.bins[bin.ID] = bin
	return bin
}

// Comments returns a CommentRepository view that locks per call.
func (s *Store) Comments() repository.CommentRepository {
	return &commentView{store: s, locking: true}
}

// Reactions returns a ReactionRepository view that locks per call.
func (s *Store) Reactions() repository.ReactionRepository {
	return &reactionView{store: s, locking: true}
}

// Bins returns a BinRepository view.
func (s *Store) Bins() repository.BinRepository {
	return &binView{store: s}
}

// Do runs fn under the store mutex so each unit of work is all-or-nothing
// with respect to every other, mirroring the per-comment row lock.
func (s *Store) Do(ctx context.Context, fn func(repository.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(repository.Repos{
		Comments:  &commentView{store: s},
		Reactions: &reactionView{store: s},
	})
}

// === comment view ===

type commentView struct {
	store   *Store
	locking bool
}

func (v *commentView) lock() func() {
	if !v.locking {
		return func() {}
	}
	v.store.mu.Lock()
	return v.store.mu.Unlock
}

func (v *commentView) Create(ctx context.Context, comment *models.Comment) error {
	defer v.lock()()
	s := v.store

	s.nextCommentID++
	comment.ID = s.nextCommentID
	comment.CreatedAt = time.Now()
	stored := *comment
	s.comments[comment.ID] = &stored
	return nil
}

func (v *commentView) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	defer v.lock()()
	s := v.store

	comment, ok := s.comments[commentID]
	if !ok || comment.IsDeleted() {
		return nil, gorm.ErrRecordNotFound
	}
	return s.withMember(comment), nil
}

func (v *commentView) LockByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	defer v.lock()()
	s := v.store

	comment, ok := s.comments[commentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *comment
	return &copied, nil
}

func (v *commentView) UpdateContent(ctx context.Context, commentID int64, content string) error {
	defer v.lock()()
	if comment, ok := v.store.comments[commentID]; ok {
		comment.Content = content
	}
	return nil
}

func (v *commentView) SoftDelete(ctx context.Context, commentID int64, at time.Time) error {
	defer v.lock()()
	if comment, ok := v.store.comments[commentID]; ok {
		comment.DeletedAt = &at
	}
	return nil
}

func (v *commentView) AdjustCounts(ctx context.Context, commentID, likeDelta, dislikeDelta int64) error {
	defer v.lock()()
	if comment, ok := v.store.comments[commentID]; ok {
		comment.LikeCount += likeDelta
		comment.DislikeCount += dislikeDelta
	}
	return nil
}

func (v *commentView) ListByBin(ctx context.Context, binID int64, commentSort repository.CommentSort, limit int) ([]models.Comment, error) {
	defer v.lock()()
	s := v.store

	var live []*models.Comment
	for _, comment := range s.comments {
		if comment.BinID == binID && !comment.IsDeleted() {
			live = append(live, comment)
		}
	}

	var page []*models.Comment
	switch order := commentSort.(type) {
	case repository.CreatedAtDesc:
		for _, comment := range live {
			if order.LastCommentID != nil && comment.ID >= *order.LastCommentID {
				continue
			}
			page = append(page, comment)
		}
		sort.Slice(page, func(i, j int) bool { return page[i].ID > page[j].ID })
	case repository.LikeCountDesc:
		for _, comment := range live {
			if c := order.Cursor; c != nil {
				after := comment.LikeCount < c.LastLikeCount ||
					(comment.LikeCount == c.LastLikeCount && comment.ID < c.LastCommentID)
				if !after {
					continue
				}
			}
			page = append(page, comment)
		}
		sort.Slice(page, func(i, j int) bool {
			if page[i].LikeCount != page[j].LikeCount {
				return page[i].LikeCount > page[j].LikeCount
			}
			return page[i].ID > page[j].ID
		})
	}

	if len(page) > limit {
		page = page[:limit]
	}

	result := make([]models.Comment, 0, len(page))
	for _, comment := range page {
		result = append(result, *s.withMember(comment))
	}
	return result, nil
}

// withMember returns a copy with the Member association populated, the way
// the gorm repository preloads it.
func (s *Store) withMember(comment *models.Comment) *models.Comment {
	copied := *comment
	if member, ok := s.members[comment.MemberID]; ok {
		copied.Member = *member
	}
	return &copied
}

// === reaction view ===

type reactionView struct {
	store   *Store
	locking bool
}

func (v *reactionView) lock() func() {
	if !v.locking {
		return func() {}
	}
	v.store.mu.Lock()
	return v.store.mu.Unlock
}

func (v *reactionView) Get(ctx context.Context, memberID string, commentID int64) (*models.CommentReaction, error) {
	defer v.lock()()

	reaction, ok := v.store.reactions[reactionKey{memberID, commentID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *reaction
	return &copied, nil
}

func (v *reactionView) Create(ctx context.Context, reaction *models.CommentReaction) error {
	defer v.lock()()

	key := reactionKey{reaction.MemberID, reaction.CommentID}
	if _, exists := v.store.reactions[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	reaction.CreatedAt = time.Now()
	stored := *reaction
	v.store.reactions[key] = &stored
	return nil
}

func (v *reactionView) UpdateKind(ctx context.Context, memberID string, commentID int64, kind models.ReactionKind) error {
	defer v.lock()()

	if reaction, ok := v.store.reactions[reactionKey{memberID, commentID}]; ok {
		reaction.Kind = kind
	}
	return nil
}

func (v *reactionView) Delete(ctx context.Context, memberID string, commentID int64) error {
	defer v.lock()()

	delete(v.store.reactions, reactionKey{memberID, commentID})
	return nil
}

func (v *reactionView) GetKindsForComments(ctx context.Context, memberID string, commentIDs []int64) (map[int64]models.ReactionKind, error) {
	defer v.lock()()

	kinds := make(map[int64]models.ReactionKind, len(commentIDs))
	for _, commentID := range commentIDs {
		if reaction, ok := v.store.reactions[reactionKey{memberID, commentID}]; ok {
			kinds[commentID] = reaction.Kind
		}
	}
	return kinds, nil
}

func (v *reactionView) CountByKind(ctx context.Context, commentID int64, kind models.ReactionKind) (int64, error) {
	defer v.lock()()

	var count int64
	for _, reaction := range v.store.reactions {
		if reaction.CommentID == commentID && reaction.Kind == kind {
			count++
		}
	}
	return count, nil
}

// === bin view ===

type binView struct {
	store *Store
}

func (v *binView) GetByID(ctx context.Context, binID int64) (*models.Bin, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()

	bin, ok := v.store.bins[binID]
	if !ok || bin.DeletedAt != nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *bin
	return &copied, nil
}
