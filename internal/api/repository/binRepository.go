package repository

import (
	"context"

	"github.com/binder-binFinder/binder-back-end/internal/api/models"

	"gorm.io/gorm"
)

type BinRepository interface {
	GetByID(ctx context.Context, binID int64) (*models.Bin, error)
}

type binRepository struct {
	db *gorm.DB
}

func NewBinRepository(db *gorm.DB) BinRepository {
	return &binRepository{db: db}
}

// GetByID retrieves a live bin, soft-deleted rows excluded
func (r *binRepository) GetByID(ctx context.Context, binID int64) (*models.Bin, error) {
	var bin models.Bin
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", binID).
		First(&bin).Error
	if err != nil {
		return nil, err
	}
	return &bin, nil
}
