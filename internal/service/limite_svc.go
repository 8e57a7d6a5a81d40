package service

import (
	"context"
	"fmt"

	"github.com/hugoferreira-ai/api-supply/internal/model"
)

// ResultadoLimite is the outcome of a store-limit evaluation. Mensagem is
// meant for direct display to the caller when PodeAdicionar is false.
type ResultadoLimite struct {
	PodeAdicionar bool
	Limite        int
	Mensagem      string
}

// LimiteService decides whether a cliente may hold one more loja under its
// plano. The check is strict: quantidadeAtual is the count before the new
// loja, so a cliente sitting exactly at the cap is rejected.
type LimiteService struct {
	planos *PlanoService
}

// NewLimiteService creates the limit evaluator.
func NewLimiteService(planos *PlanoService) *LimiteService {
	return &LimiteService{planos: planos}
}

// Validar evaluates whether the cliente can add a loja on top of
// quantidadeAtual existing ones.
func (s *LimiteService) Validar(ctx context.Context, cliente *model.Cliente, quantidadeAtual int) ResultadoLimite {
	if cliente == nil || cliente.Plano == nil {
		return ResultadoLimite{
			PodeAdicionar: false,
			Limite:        LimitePadrao,
			Mensagem:      "Cliente ou plano não encontrado",
		}
	}

	limite := s.planos.GetLimite(ctx, cliente.Plano.ID)
	if limite == model.LimiteIlimitado {
		return ResultadoLimite{PodeAdicionar: true, Limite: limite}
	}

	if quantidadeAtual >= limite {
		return ResultadoLimite{
			PodeAdicionar: false,
			Limite:        limite,
			Mensagem: fmt.Sprintf(
				"Limite de lojas excedido para o plano %s. Plano %s permite %s. Cliente já possui %d loja(s).",
				cliente.Plano.Nome, cliente.Plano.Nome, FormatarLimite(limite), quantidadeAtual),
		}
	}

	return ResultadoLimite{PodeAdicionar: true, Limite: limite}
}
