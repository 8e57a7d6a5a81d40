package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hugoferreira-ai/api-supply/internal/apperr"
	"github.com/hugoferreira-ai/api-supply/internal/model"
	"github.com/hugoferreira-ai/api-supply/internal/repository"
	"github.com/hugoferreira-ai/api-supply/pkg/logger"
)

// LimitePadrao is the store cap applied when a cliente's plano cannot be
// resolved. Unrelated operations must keep working in the face of a dangling
// plano reference, so the registry degrades to this value instead of failing.
const LimitePadrao = 1

// PlanoInfo is the read projection of a plano exposed to callers.
type PlanoInfo struct {
	ID          uint    `json:"id"`
	Nome        string  `json:"nome"`
	LimiteLojas int     `json:"limite_lojas"`
	Preco       float64 `json:"preco"`
	Descricao   string  `json:"descricao"`
	Recursos    string  `json:"recursos,omitempty"`
}

// PlanoService is the read-only plan registry.
type PlanoService struct {
	planos repository.PlanoRepository
}

// NewPlanoService creates the plan registry service.
func NewPlanoService(planos repository.PlanoRepository) *PlanoService {
	return &PlanoService{planos: planos}
}

// GetLimite resolves the store cap for a plano. A missing plano is a soft
// failure: it is logged and the default cap of 1 is returned, never an error.
func (s *PlanoService) GetLimite(ctx context.Context, planoID uint) int {
	plano, err := s.planos.GetByID(ctx, planoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.GetLogger().Warn("Plano não encontrado, usando limite padrão",
				zap.Uint("plano_id", planoID))
		} else {
			logger.GetLogger().Error("Erro ao buscar limite de lojas",
				zap.Uint("plano_id", planoID), zap.Error(err))
		}
		return LimitePadrao
	}
	return plano.Limite()
}

// GetInfo returns the plano projection, or nil when the plano does not exist.
func (s *PlanoService) GetInfo(ctx context.Context, planoID uint) (*PlanoInfo, error) {
	plano, err := s.planos.GetByID(ctx, planoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(err, "erro ao buscar informações do plano")
	}
	info := toPlanoInfo(plano)
	return &info, nil
}

// List returns all planos ordered by preço ascending.
func (s *PlanoService) List(ctx context.Context) ([]PlanoInfo, error) {
	planos, err := s.planos.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "erro ao listar planos")
	}
	infos := make([]PlanoInfo, 0, len(planos))
	for i := range planos {
		infos = append(infos, toPlanoInfo(&planos[i]))
	}
	return infos, nil
}

func toPlanoInfo(plano *model.Plano) PlanoInfo {
	return PlanoInfo{
		ID:          plano.ID,
		Nome:        plano.Nome,
		LimiteLojas: plano.LimiteLojas,
		Preco:       plano.Preco,
		Descricao:   plano.Descricao,
		Recursos:    plano.Recursos,
	}
}

// FormatarLimite renders a store cap for user-facing messages.
func FormatarLimite(limite int) string {
	if limite == model.LimiteIlimitado {
		return "lojas ilimitadas"
	}
	return fmt.Sprintf("%d loja(s)", limite)
}

// DescricaoLimite renders the plan description shown by the plano info
// endpoint.
func DescricaoLimite(limite int) string {
	if limite == model.LimiteIlimitado {
		return "Sem limite de lojas"
	}
	return fmt.Sprintf("Máximo de %d loja(s)", limite)
}
