package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hugoferreira-ai/api-supply/internal/model"
)

// PlanoRepository provides read-only access to planos. Plans are created and
// maintained by administrative flows outside this service.
type PlanoRepository interface {
	GetByID(ctx context.Context, id uint) (*model.Plano, error)
	List(ctx context.Context) ([]model.Plano, error)
}

type planoRepo struct {
	db *gorm.DB
}

// NewPlanoRepository creates a plano repository backed by gorm.
func NewPlanoRepository(db *gorm.DB) PlanoRepository {
	return &planoRepo{db: db}
}

func (r *planoRepo) GetByID(ctx context.Context, id uint) (*model.Plano, error) {
	var plano model.Plano
	if err := r.db.WithContext(ctx).First(&plano, id).Error; err != nil {
		return nil, err
	}
	return &plano, nil
}

// List returns all planos ordered by preco ascending.
func (r *planoRepo) List(ctx context.Context) ([]model.Plano, error) {
	var planos []model.Plano
	if err := r.db.WithContext(ctx).Order("preco ASC").Find(&planos).Error; err != nil {
		return nil, err
	}
	return planos, nil
}
