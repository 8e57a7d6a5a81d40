package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugoferreira-ai/api-supply/internal/apperr"
	"github.com/hugoferreira-ai/api-supply/internal/model"
	"github.com/hugoferreira-ai/api-supply/internal/repository"
)

func TestClienteCreate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewClienteService(repository.NewClienteRepository(db), NewPlanoService(repository.NewPlanoRepository(db)))
	ctx := context.Background()

	plano := seedPlano(t, db, "Básico", 2, 29.90)

	t.Run("cria com plano", func(t *testing.T) {
		cliente, err := svc.Create(ctx, ClienteInput{
			Nome:  strPtr("Mercearia da Ana"),
			Email: strPtr("ana@supply.com"),
			Plano: uintPtr(plano.ID),
		})
		require.NoError(t, err)
		require.NotNil(t, cliente.Plano)
		assert.Equal(t, "Básico", cliente.Plano.Nome)
	})

	t.Run("email duplicado rejeitado", func(t *testing.T) {
		_, err := svc.Create(ctx, ClienteInput{
			Nome:  strPtr("Outra Ana"),
			Email: strPtr("ana@supply.com"),
		})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindDuplicateEmail))
		assert.Equal(t, "Email já cadastrado", apperr.From(err).Message)
	})

	t.Run("nome obrigatorio", func(t *testing.T) {
		_, err := svc.Create(ctx, ClienteInput{Email: strPtr("x@supply.com")})
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
	})
}

func TestClienteUpdateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewClienteService(repository.NewClienteRepository(db), NewPlanoService(repository.NewPlanoRepository(db)))
	ctx := context.Background()

	a := seedCliente(t, db, "A", "a@supply.com", nil)
	seedCliente(t, db, "B", "b@supply.com", nil)

	// Updating to an email held by another cliente is rejected.
	_, err := svc.Update(ctx, a.ID, ClienteInput{Email: strPtr("b@supply.com")})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindDuplicateEmail))

	// Keeping your own email is fine: the check excludes the record itself.
	atualizado, err := svc.Update(ctx, a.ID, ClienteInput{Email: strPtr("a@supply.com"), Nome: strPtr("A2")})
	require.NoError(t, err)
	assert.Equal(t, "A2", atualizado.Nome)
}

func TestClienteMudancaDePlano(t *testing.T) {
	db := setupTestDB(t)
	svc := NewClienteService(repository.NewClienteRepository(db), NewPlanoService(repository.NewPlanoRepository(db)))
	ctx := context.Background()

	grande := seedPlano(t, db, "Pro", 5, 99.90)
	pequeno := seedPlano(t, db, "Básico", 2, 29.90)
	ilimitado := seedPlano(t, db, "Enterprise", model.LimiteIlimitado, 299.90)

	cliente := seedCliente(t, db, "Rede XYZ", "xyz@supply.com", uintPtr(grande.ID))
	seedLoja(t, db, "Loja 1", cliente.ID, true)
	seedLoja(t, db, "Loja 2", cliente.ID, true)
	seedLoja(t, db, "Loja 3", cliente.ID, true)

	t.Run("downgrade abaixo das lojas atuais rejeitado", func(t *testing.T) {
		_, err := svc.Update(ctx, cliente.ID, ClienteInput{Plano: uintPtr(pequeno.ID)})
		require.Error(t, err)
		require.True(t, apperr.IsKind(err, apperr.KindLimitExceeded))
		msg := apperr.From(err).Message
		assert.Contains(t, msg, "Básico")
		assert.Contains(t, msg, "3 loja(s)")
		assert.Contains(t, msg, "2 loja(s)")
	})

	t.Run("mudanca que cai exatamente no limite permitida", func(t *testing.T) {
		// 3 lojas, novo limite 3: non-strict boundary, the change lands
		// exactly at the cap and must go through.
		exato := seedPlano(t, db, "Médio", 3, 59.90)
		atualizado, err := svc.Update(ctx, cliente.ID, ClienteInput{Plano: uintPtr(exato.ID)})
		require.NoError(t, err)
		require.NotNil(t, atualizado.Plano)
		assert.Equal(t, "Médio", atualizado.Plano.Nome)
	})

	t.Run("mudanca para ilimitado sempre permitida", func(t *testing.T) {
		atualizado, err := svc.Update(ctx, cliente.ID, ClienteInput{Plano: uintPtr(ilimitado.ID)})
		require.NoError(t, err)
		assert.Equal(t, "Enterprise", atualizado.Plano.Nome)
	})

	t.Run("cliente inexistente", func(t *testing.T) {
		_, err := svc.Update(ctx, 9999, ClienteInput{Plano: uintPtr(pequeno.ID)})
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}
