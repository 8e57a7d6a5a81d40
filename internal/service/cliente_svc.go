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
	"github.com/hugoferreira-ai/api-supply/prometheus"
)

// ClienteInput carries the writable cliente fields. Nil pointers mean the
// field was not sent and must be preserved on update.
type ClienteInput struct {
	Nome     *string `json:"nome"`
	Email    *string `json:"email"`
	Telefone *string `json:"telefone"`
	Plano    *uint   `json:"plano"`
}

// ClienteService orchestrates cliente writes: the best-effort email
// uniqueness check and the plan-change guard run before any mutation.
type ClienteService struct {
	clientes repository.ClienteRepository
	planos   *PlanoService
}

// NewClienteService creates the cliente service.
func NewClienteService(clientes repository.ClienteRepository, planos *PlanoService) *ClienteService {
	return &ClienteService{clientes: clientes, planos: planos}
}

// List returns all clientes with plano and lojas populated.
func (s *ClienteService) List(ctx context.Context) ([]model.Cliente, error) {
	clientes, err := s.clientes.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "erro ao listar clientes")
	}
	return clientes, nil
}

// Get returns one cliente with plano and lojas populated.
func (s *ClienteService) Get(ctx context.Context, id uint) (*model.Cliente, error) {
	cliente, err := s.clientes.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Cliente não encontrado")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "erro ao buscar cliente")
	}
	return cliente, nil
}

// Create validates email uniqueness and persists a new cliente.
func (s *ClienteService) Create(ctx context.Context, input ClienteInput) (*model.Cliente, error) {
	if input.Nome == nil || *input.Nome == "" {
		return nil, apperr.Invalid("Nome é obrigatório")
	}
	if input.Email != nil && *input.Email != "" {
		if err := s.checkEmailDisponivel(ctx, *input.Email, 0); err != nil {
			return nil, err
		}
	}

	cliente := model.Cliente{
		Nome:    *input.Nome,
		PlanoID: input.Plano,
		Active:  true,
	}
	if input.Email != nil {
		cliente.Email = *input.Email
	}
	if input.Telefone != nil {
		cliente.Telefone = *input.Telefone
	}

	if err := s.clientes.Create(ctx, &cliente); err != nil {
		logger.GetLogger().Error("Erro ao criar cliente",
			zap.String("email", cliente.Email), zap.Error(err))
		return nil, apperr.Wrap(err, "erro ao criar cliente")
	}

	return s.Get(ctx, cliente.ID)
}

// Update applies the input to an existing cliente. A plano change is guarded
// against the cliente's current loja count before anything is written.
func (s *ClienteService) Update(ctx context.Context, id uint, input ClienteInput) (*model.Cliente, error) {
	atual, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Plano != nil {
		if err := s.validarMudancaPlano(ctx, atual, *input.Plano); err != nil {
			return nil, err
		}
	}

	if input.Email != nil && *input.Email != "" {
		if err := s.checkEmailDisponivel(ctx, *input.Email, id); err != nil {
			return nil, err
		}
	}

	fields := map[string]interface{}{}
	if input.Nome != nil {
		fields["nome"] = *input.Nome
	}
	if input.Email != nil {
		fields["email"] = *input.Email
	}
	if input.Telefone != nil {
		fields["telefone"] = *input.Telefone
	}
	if input.Plano != nil {
		fields["plano_id"] = *input.Plano
	}

	if len(fields) > 0 {
		if err := s.clientes.UpdateFields(ctx, id, fields); err != nil {
			logger.GetLogger().Error("Erro ao atualizar cliente",
				zap.Uint("cliente_id", id), zap.Error(err))
			return nil, apperr.Wrap(err, "erro ao atualizar cliente")
		}
	}

	return s.Get(ctx, id)
}

// Delete removes a cliente.
func (s *ClienteService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.clientes.Delete(ctx, id); err != nil {
		logger.GetLogger().Error("Erro ao remover cliente",
			zap.Uint("cliente_id", id), zap.Error(err))
		return apperr.Wrap(err, "erro ao remover cliente")
	}
	return nil
}

// validarMudancaPlano blocks plan changes that would leave the cliente over
// the new cap. The boundary here is non-strict on purpose: lojas already
// committed under the prior plano may land exactly at the new limit, only
// exceeding it is rejected.
func (s *ClienteService) validarMudancaPlano(ctx context.Context, atual *model.Cliente, novoPlanoID uint) error {
	novoLimite := s.planos.GetLimite(ctx, novoPlanoID)
	if novoLimite == model.LimiteIlimitado {
		return nil
	}

	quantidadeAtual := len(atual.Lojas)
	if quantidadeAtual <= novoLimite {
		return nil
	}

	nome := "desconhecido"
	if info, err := s.planos.GetInfo(ctx, novoPlanoID); err == nil && info != nil {
		nome = info.Nome
	}

	prometheus.RecordLimiteRejection("plano_change")
	return apperr.LimitExceeded(fmt.Sprintf(
		"Não é possível alterar para o plano %s. Cliente possui %d loja(s), mas o plano %s permite apenas %s. "+
			"Remova algumas lojas antes de alterar o plano.",
		nome, quantidadeAtual, nome, FormatarLimite(novoLimite)))
}

// checkEmailDisponivel is the best-effort uniqueness check. It is a
// check-then-act read and can race under concurrent requests; a database
// unique constraint remains the real guarantee.
func (s *ClienteService) checkEmailDisponivel(ctx context.Context, email string, excludeID uint) error {
	existentes, err := s.clientes.FindByEmail(ctx, email, excludeID)
	if err != nil {
		return apperr.Wrap(err, "erro ao validar email")
	}
	if len(existentes) > 0 {
		prometheus.RecordValidationError("duplicate_email")
		return apperr.DuplicateEmail("Email já cadastrado")
	}
	return nil
}
