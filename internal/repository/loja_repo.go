package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hugoferreira-ai/api-supply/internal/model"
)

// LojaRepository persists lojas, including the draft/published versioning
// behavior inherited from the previous backend: publishing a draft creates a
// fresh row under the same DocumentID and retires the draft, so an update can
// hand back a loja with a different internal ID than it started with.
type LojaRepository interface {
	Create(ctx context.Context, loja *model.Loja) error
	GetByID(ctx context.Context, id uint) (*model.Loja, error)

	// GetByDocumentID resolves the authoritative version for a stable
	// identifier: the published row when one exists, otherwise the most
	// recently updated draft.
	GetByDocumentID(ctx context.Context, documentID string) (*model.Loja, error)

	List(ctx context.Context) ([]model.Loja, error)

	// Update applies fields to the loja and returns the surviving row. When
	// publicar is set and the target is still a draft, the surviving row is a
	// new published one and the draft is removed.
	Update(ctx context.Context, loja *model.Loja, fields map[string]interface{}, publicar bool) (*model.Loja, error)

	Delete(ctx context.Context, id uint) error
}

type lojaRepo struct {
	db *gorm.DB
}

// NewLojaRepository creates a loja repository backed by gorm.
func NewLojaRepository(db *gorm.DB) LojaRepository {
	return &lojaRepo{db: db}
}

func (r *lojaRepo) Create(ctx context.Context, loja *model.Loja) error {
	return r.db.WithContext(ctx).Create(loja).Error
}

func (r *lojaRepo) GetByID(ctx context.Context, id uint) (*model.Loja, error) {
	var loja model.Loja
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Cliente.Plano").
		First(&loja, id).Error
	if err != nil {
		return nil, err
	}
	return &loja, nil
}

func (r *lojaRepo) GetByDocumentID(ctx context.Context, documentID string) (*model.Loja, error) {
	var lojas []model.Loja
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Cliente.Plano").
		Where("document_id = ?", documentID).
		Order("updated_at DESC").
		Find(&lojas).Error
	if err != nil {
		return nil, err
	}
	if len(lojas) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	// Published version wins over any draft.
	for i := range lojas {
		if lojas[i].Publicada() {
			return &lojas[i], nil
		}
	}
	return &lojas[0], nil
}

func (r *lojaRepo) List(ctx context.Context) ([]model.Loja, error) {
	var lojas []model.Loja
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Cliente.Plano").
		Order("id ASC").
		Find(&lojas).Error
	if err != nil {
		return nil, err
	}
	return lojas, nil
}

func (r *lojaRepo) Update(ctx context.Context, loja *model.Loja, fields map[string]interface{}, publicar bool) (*model.Loja, error) {
	if publicar && !loja.Publicada() {
		return r.publishDraft(ctx, loja, fields)
	}

	if len(fields) > 0 {
		err := r.db.WithContext(ctx).
			Model(&model.Loja{}).
			Where("id = ?", loja.ID).
			Updates(fields).Error
		if err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, loja.ID)
}

// publishDraft replaces a draft row by a published one under the same
// DocumentID. The new row gets a fresh internal ID; callers are responsible
// for migrating anything keyed on the old ID.
func (r *lojaRepo) publishDraft(ctx context.Context, draft *model.Loja, fields map[string]interface{}) (*model.Loja, error) {
	now := time.Now()
	published := model.Loja{
		DocumentID:  draft.DocumentID,
		Nome:        draft.Nome,
		Endereco:    draft.Endereco,
		Telefone:    draft.Telefone,
		ClienteID:   draft.ClienteID,
		PublishedAt: &now,
	}
	applyLojaFields(&published, fields)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&published).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.Loja{}, draft.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, published.ID)
}

func applyLojaFields(loja *model.Loja, fields map[string]interface{}) {
	for key, value := range fields {
		switch key {
		case "nome":
			if v, ok := value.(string); ok {
				loja.Nome = v
			}
		case "endereco":
			if v, ok := value.(string); ok {
				loja.Endereco = v
			}
		case "telefone":
			if v, ok := value.(string); ok {
				loja.Telefone = v
			}
		case "cliente_id":
			if v, ok := value.(uint); ok {
				loja.ClienteID = v
			}
		}
	}
}

func (r *lojaRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Loja{}, id).Error
}
