package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugoferreira-ai/api-supply/internal/model"
	"github.com/hugoferreira-ai/api-supply/internal/repository"
)

func TestLimiteValidar(t *testing.T) {
	db := setupTestDB(t)
	planoSvc := NewPlanoService(repository.NewPlanoRepository(db))
	limiteSvc := NewLimiteService(planoSvc)
	ctx := context.Background()

	basico := seedPlano(t, db, "Básico", 2, 29.90)
	ilimitado := seedPlano(t, db, "Enterprise", model.LimiteIlimitado, 299.90)

	clienteBasico := &model.Cliente{Nome: "Loja do João", Plano: basico}
	clienteIlimitado := &model.Cliente{Nome: "Mega Rede", Plano: ilimitado}

	t.Run("abaixo do limite permite", func(t *testing.T) {
		resultado := limiteSvc.Validar(ctx, clienteBasico, 1)
		assert.True(t, resultado.PodeAdicionar)
		assert.Equal(t, 2, resultado.Limite)
	})

	t.Run("no limite rejeita", func(t *testing.T) {
		resultado := limiteSvc.Validar(ctx, clienteBasico, 2)
		require.False(t, resultado.PodeAdicionar)
		assert.Equal(t, 2, resultado.Limite)
		assert.Contains(t, resultado.Mensagem, "Básico")
		assert.Contains(t, resultado.Mensagem, "2 loja(s)")
		assert.Contains(t, resultado.Mensagem, "já possui 2 loja(s)")
	})

	t.Run("acima do limite rejeita", func(t *testing.T) {
		resultado := limiteSvc.Validar(ctx, clienteBasico, 5)
		assert.False(t, resultado.PodeAdicionar)
	})

	t.Run("plano ilimitado sempre permite", func(t *testing.T) {
		resultado := limiteSvc.Validar(ctx, clienteIlimitado, 1000)
		assert.True(t, resultado.PodeAdicionar)
		assert.Equal(t, model.LimiteIlimitado, resultado.Limite)
	})

	t.Run("cliente sem plano rejeita com limite padrao", func(t *testing.T) {
		semPlano := &model.Cliente{Nome: "Sem Plano"}
		resultado := limiteSvc.Validar(ctx, semPlano, 0)
		require.False(t, resultado.PodeAdicionar)
		assert.Equal(t, LimitePadrao, resultado.Limite)
		assert.Equal(t, "Cliente ou plano não encontrado", resultado.Mensagem)
	})
}

func TestPlanoGetLimite(t *testing.T) {
	db := setupTestDB(t)
	planoSvc := NewPlanoService(repository.NewPlanoRepository(db))
	ctx := context.Background()

	plano := seedPlano(t, db, "Pro", 5, 99.90)
	zerado := seedPlano(t, db, "Defeituoso", 0, 9.90)

	assert.Equal(t, 5, planoSvc.GetLimite(ctx, plano.ID))

	// A zero cap is normalized to the default of 1.
	assert.Equal(t, 1, planoSvc.GetLimite(ctx, zerado.ID))

	// A dangling plano reference degrades to the default cap instead of failing.
	assert.Equal(t, LimitePadrao, planoSvc.GetLimite(ctx, 9999))
}

func TestPlanoListOrdenadoPorPreco(t *testing.T) {
	db := setupTestDB(t)
	planoSvc := NewPlanoService(repository.NewPlanoRepository(db))
	ctx := context.Background()

	seedPlano(t, db, "Pro", 5, 99.90)
	seedPlano(t, db, "Básico", 1, 9.90)
	seedPlano(t, db, "Enterprise", model.LimiteIlimitado, 299.90)

	planos, err := planoSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, planos, 3)
	assert.Equal(t, "Básico", planos[0].Nome)
	assert.Equal(t, "Pro", planos[1].Nome)
	assert.Equal(t, "Enterprise", planos[2].Nome)
}

func TestPlanoGetInfo(t *testing.T) {
	db := setupTestDB(t)
	planoSvc := NewPlanoService(repository.NewPlanoRepository(db))
	ctx := context.Background()

	plano := seedPlano(t, db, "Pro", 5, 99.90)

	info, err := planoSvc.GetInfo(ctx, plano.ID)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "Pro", info.Nome)
	assert.Equal(t, 5, info.LimiteLojas)

	missing, err := planoSvc.GetInfo(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFormatarLimite(t *testing.T) {
	assert.Equal(t, "3 loja(s)", FormatarLimite(3))
	assert.Equal(t, "lojas ilimitadas", FormatarLimite(model.LimiteIlimitado))
	assert.Equal(t, "Máximo de 2 loja(s)", DescricaoLimite(2))
	assert.Equal(t, "Sem limite de lojas", DescricaoLimite(model.LimiteIlimitado))
}
