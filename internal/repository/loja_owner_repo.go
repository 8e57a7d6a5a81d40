package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hugoferreira-ai/api-supply/internal/model"
)

// LojaOwnerRepository manages the loja -> user link side table. At most one
// row exists per loja; absence of a row means the loja has no owner.
type LojaOwnerRepository interface {
	// GetByLojaID returns the link row for a loja, or nil when none exists.
	GetByLojaID(ctx context.Context, lojaID uint) (*model.LojaOwner, error)

	// GetByLojaIDs returns all link rows for the given loja ids in one query.
	GetByLojaIDs(ctx context.Context, lojaIDs []uint) ([]model.LojaOwner, error)

	// Replace is the idempotent synchronize primitive: it removes any existing
	// row for the loja and inserts a new one only when userID is non-nil.
	// Repeating the call with the same desired state is a no-op in effect.
	Replace(ctx context.Context, lojaID uint, userID *uint) error

	// Move re-keys the link row from one loja id to another. Used when
	// republication assigns the loja a new internal id.
	Move(ctx context.Context, oldLojaID, newLojaID uint) error

	// DeleteByLojaID removes the link row, if any. Missing rows are not an
	// error.
	DeleteByLojaID(ctx context.Context, lojaID uint) error
}

type lojaOwnerRepo struct {
	db *gorm.DB
}

// NewLojaOwnerRepository creates a link-table repository backed by gorm.
func NewLojaOwnerRepository(db *gorm.DB) LojaOwnerRepository {
	return &lojaOwnerRepo{db: db}
}

func (r *lojaOwnerRepo) GetByLojaID(ctx context.Context, lojaID uint) (*model.LojaOwner, error) {
	var link model.LojaOwner
	err := r.db.WithContext(ctx).Where("loja_id = ?", lojaID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *lojaOwnerRepo) GetByLojaIDs(ctx context.Context, lojaIDs []uint) ([]model.LojaOwner, error) {
	if len(lojaIDs) == 0 {
		return nil, nil
	}
	var links []model.LojaOwner
	if err := r.db.WithContext(ctx).Where("loja_id IN ?", lojaIDs).Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *lojaOwnerRepo) Replace(ctx context.Context, lojaID uint, userID *uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("loja_id = ?", lojaID).Delete(&model.LojaOwner{}).Error; err != nil {
			return err
		}
		if userID == nil {
			return nil
		}
		return tx.Create(&model.LojaOwner{LojaID: lojaID, UserID: *userID}).Error
	})
}

func (r *lojaOwnerRepo) Move(ctx context.Context, oldLojaID, newLojaID uint) error {
	return r.db.WithContext(ctx).
		Model(&model.LojaOwner{}).
		Where("loja_id = ?", oldLojaID).
		Update("loja_id", newLojaID).Error
}

func (r *lojaOwnerRepo) DeleteByLojaID(ctx context.Context, lojaID uint) error {
	return r.db.WithContext(ctx).Where("loja_id = ?", lojaID).Delete(&model.LojaOwner{}).Error
}
