package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hugoferreira-ai/api-supply/internal/model"
)

// UserRepository resolves user accounts referenced as loja owners.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)

	// GetByDocumentID resolves a user by its stable identifier, returning nil
	// when no user matches.
	GetByDocumentID(ctx context.Context, documentID string) (*model.User, error)

	// GetByIDs returns all users with the given ids in one query.
	GetByIDs(ctx context.Context, ids []uint) ([]model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository backed by gorm.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByDocumentID(ctx context.Context, documentID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("document_id = ?", documentID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByIDs(ctx context.Context, ids []uint) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []model.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
