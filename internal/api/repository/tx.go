package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repos bundles the repositories bound to one unit of work.
type Repos struct {
	Comments  CommentRepository
	Reactions ReactionRepository
}

// TxManager runs a function inside a single all-or-nothing transaction.
// Every write path in the service opens exactly one of these; storage calls
// never commit independently of each other.
type TxManager interface {
	Do(ctx context.Context, fn func(Repos) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Do(ctx context.Context, fn func(Repos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Repos{
			Comments:  NewCommentRepository(tx),
			Reactions: NewReactionRepository(tx),
		})
	})
}

// Postgres error codes worth one retry at the transaction boundary.
const (
	pgUniqueViolation   = "23505"
	pgSerializationFail = "40001"
	pgDeadlockDetected  = "40P01"
	pgLockNotAvailable  = "55P03"
)

// IsRetryable reports whether the transaction failed on a transient storage
// race: lock contention, serialization failure, or the unique-constraint
// race when two first-time reactions from one member insert concurrently.
// Callers retry once; the second attempt observes the committed state.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgUniqueViolation, pgSerializationFail, pgDeadlockDetected, pgLockNotAvailable:
		return true
	}
	return false
}
