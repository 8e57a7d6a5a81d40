package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/hugoferreira-ai/api-supply/internal/model"
)

// ClienteRepository persists clientes. Reads always carry the plano and lojas
// relations because every caller needs them for limit decisions or output.
type ClienteRepository interface {
	Create(ctx context.Context, cliente *model.Cliente) error
	GetByID(ctx context.Context, id uint) (*model.Cliente, error)
	List(ctx context.Context) ([]model.Cliente, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error

	// FindByEmail returns clientes holding the given email, excluding
	// excludeID when non-zero. Used by the best-effort uniqueness check.
	FindByEmail(ctx context.Context, email string, excludeID uint) ([]model.Cliente, error)
}

type clienteRepo struct {
	db *gorm.DB
}

// NewClienteRepository creates a cliente repository backed by gorm.
func NewClienteRepository(db *gorm.DB) ClienteRepository {
	return &clienteRepo{db: db}
}

func (r *clienteRepo) Create(ctx context.Context, cliente *model.Cliente) error {
	return r.db.WithContext(ctx).Create(cliente).Error
}

func (r *clienteRepo) GetByID(ctx context.Context, id uint) (*model.Cliente, error) {
	var cliente model.Cliente
	err := r.db.WithContext(ctx).
		Preload("Plano").
		Preload("Lojas").
		First(&cliente, id).Error
	if err != nil {
		return nil, err
	}
	return &cliente, nil
}

func (r *clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).
		Preload("Plano").
		Preload("Lojas").
		Order("id ASC").
		Find(&clientes).Error
	if err != nil {
		return nil, err
	}
	return clientes, nil
}

func (r *clienteRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Cliente{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *clienteRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Cliente{}, id).Error
}

func (r *clienteRepo) FindByEmail(ctx context.Context, email string, excludeID uint) ([]model.Cliente, error) {
	var clientes []model.Cliente
	query := r.db.WithContext(ctx).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Find(&clientes).Error; err != nil {
		return nil, err
	}
	return clientes, nil
}
