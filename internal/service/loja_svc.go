package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hugoferreira-ai/api-supply/internal/apperr"
	"github.com/hugoferreira-ai/api-supply/internal/model"
	"github.com/hugoferreira-ai/api-supply/internal/repository"
	"github.com/hugoferreira-ai/api-supply/pkg/logger"
	"github.com/hugoferreira-ai/api-supply/prometheus"
)

// LojaInput carries the writable loja fields. Nil pointers mean the field was
// not sent. Owner keeps the raw JSON so absence, null and every reference
// shape stay distinguishable until normalization.
type LojaInput struct {
	Nome     *string         `json:"nome"`
	Endereco *string         `json:"endereco"`
	Telefone *string         `json:"telefone"`
	Cliente  *uint           `json:"cliente"`
	Publicar *bool           `json:"publicar"`
	Owner    json.RawMessage `json:"owner"`
}

// LojaService coordinates the loja lifecycle: plan-limit enforcement on
// create and cliente reassignment, owner reference resolution, and the
// loja -> user link kept in sync with every write.
type LojaService struct {
	lojas    repository.LojaRepository
	owners   repository.LojaOwnerRepository
	clientes repository.ClienteRepository
	users    repository.UserRepository
	limite   *LimiteService

	// Link delete+insert for one loja must not interleave with another
	// writer on the same loja. Different lojas are independent.
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// NewLojaService creates the loja lifecycle coordinator.
func NewLojaService(
	lojas repository.LojaRepository,
	owners repository.LojaOwnerRepository,
	clientes repository.ClienteRepository,
	users repository.UserRepository,
	limite *LimiteService,
) *LojaService {
	return &LojaService{
		lojas:    lojas,
		owners:   owners,
		clientes: clientes,
		users:    users,
		limite:   limite,
		locks:    make(map[uint]*sync.Mutex),
	}
}

// Find returns all lojas with cliente (and plano) and owner populated.
func (s *LojaService) Find(ctx context.Context) ([]model.Loja, error) {
	lojas, err := s.lojas.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "erro ao listar lojas")
	}
	if err := s.populateOwners(ctx, lojas); err != nil {
		return nil, err
	}
	return lojas, nil
}

// FindOne resolves a loja by internal id or by DocumentID and returns it with
// cliente and owner populated.
func (s *LojaService) FindOne(ctx context.Context, idOrDocumentID string) (*model.Loja, error) {
	loja, err := s.resolve(ctx, idOrDocumentID)
	if err != nil {
		return nil, err
	}
	owner, err := s.ownerView(ctx, loja.ID)
	if err != nil {
		return nil, apperr.Wrap(err, "erro ao buscar proprietário da loja")
	}
	loja.Owner = owner
	return loja, nil
}

// Create enforces the plan limit and persists a new loja for the cliente,
// then applies the owner reference if one was sent.
func (s *LojaService) Create(ctx context.Context, input LojaInput) (*model.Loja, error) {
	if input.Cliente == nil {
		prometheus.RecordValidationError("invalid_input")
		return nil, apperr.Invalid("Cliente é obrigatório para criar uma loja")
	}

	cliente, err := s.clientes.GetByID(ctx, *input.Cliente)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Cliente não encontrado")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "erro ao buscar cliente")
	}
	if cliente.Plano == nil {
		prometheus.RecordValidationError("invalid_input")
		return nil, apperr.Invalid("Cliente não possui um plano válido")
	}

	resultado := s.limite.Validar(ctx, cliente, len(cliente.Lojas))
	if !resultado.PodeAdicionar {
		prometheus.RecordLimiteRejection("loja_create")
		logger.GetLogger().Info("Criação de loja bloqueada pelo limite do plano",
			zap.Uint("cliente_id", cliente.ID),
			zap.Int("lojas_atuais", len(cliente.Lojas)),
			zap.Int("limite", resultado.Limite))
		return nil, apperr.LimitExceeded(resultado.Mensagem)
	}

	loja := model.Loja{
		DocumentID: uuid.NewString(),
		ClienteID:  cliente.ID,
	}
	if input.Nome != nil {
		loja.Nome = *input.Nome
	}
	if input.Endereco != nil {
		loja.Endereco = *input.Endereco
	}
	if input.Telefone != nil {
		loja.Telefone = *input.Telefone
	}
	if input.Publicar == nil || *input.Publicar {
		now := time.Now()
		loja.PublishedAt = &now
	}

	if err := s.lojas.Create(ctx, &loja); err != nil {
		logger.GetLogger().Error("Erro ao criar loja",
			zap.Uint("cliente_id", cliente.ID), zap.Error(err))
		return nil, apperr.Wrap(err, "erro ao criar loja")
	}

	ref := NormalizeOwnerRef(input.Owner)
	if ref.Kind != OwnerRefAbsent {
		ownerID, err := s.resolveOwnerRef(ctx, ref)
		if err != nil {
			return nil, err
		}
		if err := s.syncLink(ctx, loja.ID, ownerID); err != nil {
			return nil, err
		}
	}

	return s.FindOne(ctx, strconv.FormatUint(uint64(loja.ID), 10))
}

// Update applies the input to the loja addressed by id or DocumentID. The
// limit check re-runs on cliente reassignment, and the owner link survives a
// republication that changes the loja's internal id.
func (s *LojaService) Update(ctx context.Context, idOrDocumentID string, input LojaInput) (*model.Loja, error) {
	atual, err := s.resolve(ctx, idOrDocumentID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Nome != nil {
		fields["nome"] = *input.Nome
	}
	if input.Endereco != nil {
		fields["endereco"] = *input.Endereco
	}
	if input.Telefone != nil {
		fields["telefone"] = *input.Telefone
	}

	if input.Cliente != nil && *input.Cliente != atual.ClienteID {
		if err := s.validarTrocaDeCliente(ctx, atual, *input.Cliente); err != nil {
			return nil, err
		}
		fields["cliente_id"] = *input.Cliente
	}

	// The link row is keyed on the internal id, which the write below may
	// replace. Capture it first so it can follow the loja.
	oldID := atual.ID
	preLink, err := s.owners.GetByLojaID(ctx, oldID)
	if err != nil {
		return nil, apperr.Wrap(err, "erro ao buscar vínculo de proprietário")
	}

	publicar := input.Publicar != nil && *input.Publicar
	atualizada, err := s.lojas.Update(ctx, atual, fields, publicar)
	if err != nil {
		logger.GetLogger().Error("Erro ao atualizar loja",
			zap.Uint("loja_id", oldID), zap.Error(err))
		return nil, apperr.Wrap(err, "erro ao atualizar loja")
	}

	if atualizada.ID != oldID && preLink != nil {
		if err := s.migrateLink(ctx, preLink, oldID, atualizada.ID); err != nil {
			return nil, err
		}
	}

	ref := NormalizeOwnerRef(input.Owner)
	if ref.Kind != OwnerRefAbsent {
		ownerID, err := s.resolveOwnerRef(ctx, ref)
		if err != nil {
			return nil, err
		}
		if err := s.syncLink(ctx, atualizada.ID, ownerID); err != nil {
			return nil, err
		}
	}

	return s.FindOne(ctx, strconv.FormatUint(uint64(atualizada.ID), 10))
}

// Delete removes a loja and its link row. The link goes first so it can never
// outlive the loja.
func (s *LojaService) Delete(ctx context.Context, idOrDocumentID string) error {
	loja, err := s.resolve(ctx, idOrDocumentID)
	if err != nil {
		return err
	}

	lock := s.lockFor(loja.ID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.owners.DeleteByLojaID(ctx, loja.ID); err != nil {
		logger.GetLogger().Error("Erro ao remover vínculo de proprietário",
			zap.Uint("loja_id", loja.ID), zap.Error(err))
		return apperr.Wrap(err, "erro ao remover loja")
	}
	if err := s.lojas.Delete(ctx, loja.ID); err != nil {
		logger.GetLogger().Error("Erro ao remover loja",
			zap.Uint("loja_id", loja.ID), zap.Error(err))
		return apperr.Wrap(err, "erro ao remover loja")
	}
	return nil
}

// resolve addresses a loja by numeric id or by DocumentID. For a DocumentID
// with multiple versions the published row is authoritative, else the most
// recent draft.
func (s *LojaService) resolve(ctx context.Context, idOrDocumentID string) (*model.Loja, error) {
	var (
		loja *model.Loja
		err  error
	)
	if id, perr := strconv.ParseUint(idOrDocumentID, 10, 64); perr == nil {
		loja, err = s.lojas.GetByID(ctx, uint(id))
	} else {
		loja, err = s.lojas.GetByDocumentID(ctx, idOrDocumentID)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prometheus.RecordValidationError("not_found")
		return nil, apperr.NotFound("Loja não encontrada")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "erro ao buscar loja")
	}
	return loja, nil
}

// validarTrocaDeCliente re-runs the create-time limit check against the
// target cliente, excluding the loja being moved from its count so a move
// within the same allowed pool is not double-counted.
func (s *LojaService) validarTrocaDeCliente(ctx context.Context, loja *model.Loja, novoClienteID uint) error {
	cliente, err := s.clientes.GetByID(ctx, novoClienteID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Cliente não encontrado")
	}
	if err != nil {
		return apperr.Wrap(err, "erro ao buscar cliente")
	}
	if cliente.Plano == nil {
		return apperr.Invalid("Cliente não possui um plano válido")
	}

	quantidade := len(cliente.Lojas)
	for i := range cliente.Lojas {
		if cliente.Lojas[i].ID == loja.ID || cliente.Lojas[i].DocumentID == loja.DocumentID {
			quantidade--
			break
		}
	}

	resultado := s.limite.Validar(ctx, cliente, quantidade)
	if !resultado.PodeAdicionar {
		prometheus.RecordLimiteRejection("loja_move")
		return apperr.LimitExceeded(resultado.Mensagem)
	}
	return nil
}

// resolveOwnerRef turns a normalized owner reference into a user id, or nil
// when the reference clears the link or matches no user.
func (s *LojaService) resolveOwnerRef(ctx context.Context, ref OwnerRef) (*uint, error) {
	switch ref.Kind {
	case OwnerRefByID:
		id := ref.UserID
		return &id, nil
	case OwnerRefByDocumentID:
		user, err := s.users.GetByDocumentID(ctx, ref.DocumentID)
		if err != nil {
			return nil, apperr.Wrap(err, "erro ao buscar usuário")
		}
		if user == nil {
			logger.GetLogger().Warn("Proprietário não encontrado pelo documentId, vínculo será removido",
				zap.String("document_id", ref.DocumentID))
			return nil, nil
		}
		id := user.ID
		return &id, nil
	default:
		return nil, nil
	}
}

// syncLink is the idempotent replace: any existing link row for the loja is
// removed and a new one inserted only when ownerID is present.
func (s *LojaService) syncLink(ctx context.Context, lojaID uint, ownerID *uint) error {
	lock := s.lockFor(lojaID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.owners.Replace(ctx, lojaID, ownerID); err != nil {
		logger.GetLogger().Error("Erro ao sincronizar vínculo de proprietário",
			zap.Uint("loja_id", lojaID), zap.Error(err))
		return apperr.Wrap(err, "erro ao sincronizar proprietário da loja")
	}
	return nil
}

// migrateLink moves the link row from the retired internal id to the new one.
// Losing this step silently drops ownership whenever a republication assigns
// a new id, so a failed move is retried once as a direct replace before the
// error surfaces.
func (s *LojaService) migrateLink(ctx context.Context, preLink *model.LojaOwner, oldID, newID uint) error {
	lock := s.lockFor(oldID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.owners.Move(ctx, oldID, newID); err != nil {
		logger.GetLogger().Warn("Falha ao migrar vínculo de proprietário, tentando substituição direta",
			zap.Uint("loja_id_antigo", oldID),
			zap.Uint("loja_id_novo", newID),
			zap.Error(err))

		userID := preLink.UserID
		if rerr := s.owners.Replace(ctx, newID, &userID); rerr != nil {
			logger.GetLogger().Error("Erro ao migrar vínculo de proprietário",
				zap.Uint("loja_id_antigo", oldID),
				zap.Uint("loja_id_novo", newID),
				zap.Error(rerr))
			return apperr.Wrap(rerr, "erro ao migrar proprietário da loja")
		}
	}
	return nil
}

// populateOwners batches the link and user lookups for a set of lojas and
// attaches the sanitized owner projection to each record.
func (s *LojaService) populateOwners(ctx context.Context, lojas []model.Loja) error {
	if len(lojas) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(lojas))
	for i := range lojas {
		ids = append(ids, lojas[i].ID)
	}

	links, err := s.owners.GetByLojaIDs(ctx, ids)
	if err != nil {
		return apperr.Wrap(err, "erro ao buscar proprietários das lojas")
	}
	if len(links) == 0 {
		return nil
	}

	userIDs := make([]uint, 0, len(links))
	ownerByLoja := make(map[uint]uint, len(links))
	for _, link := range links {
		ownerByLoja[link.LojaID] = link.UserID
		userIDs = append(userIDs, link.UserID)
	}

	users, err := s.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return apperr.Wrap(err, "erro ao buscar usuários proprietários")
	}
	viewByID := make(map[uint]*model.UserView, len(users))
	for i := range users {
		viewByID[users[i].ID] = users[i].Sanitized()
	}

	for i := range lojas {
		if userID, ok := ownerByLoja[lojas[i].ID]; ok {
			lojas[i].Owner = viewByID[userID]
		}
	}
	return nil
}

// ownerView fetches the sanitized owner for a single loja, or nil when none.
func (s *LojaService) ownerView(ctx context.Context, lojaID uint) (*model.UserView, error) {
	link, err := s.owners.GetByLojaID(ctx, lojaID)
	if err != nil || link == nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, link.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user.Sanitized(), nil
}

// lockFor returns the mutex serializing link writes for one loja id.
func (s *LojaService) lockFor(lojaID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[lojaID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[lojaID] = lock
	}
	return lock
}
