package repository

import (
	"context"

	"github.com/lshigami/sketchquiz/internal/model"
	"gorm.io/gorm"
)

// ResultRepository is append-only: results are never updated or deleted.
type ResultRepository interface {
	Create(ctx context.Context, result *model.Result) error
	FindAll(ctx context.Context, username string) ([]model.Result, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(ctx context.Context, result *model.Result) error {
	return r.db.WithContext(ctx).Create(result).Error
}

// FindAll lists results newest first, filtered by username when it is not empty.
func (r *resultRepository) FindAll(ctx context.Context, username string) ([]model.Result, error) {
	var results []model.Result
	query := r.db.WithContext(ctx)
	if username != "" {
		query = query.Where("username = ?", username)
	}
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
