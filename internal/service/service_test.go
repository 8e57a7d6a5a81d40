package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hugoferreira-ai/api-supply/internal/model"
	"github.com/hugoferreira-ai/api-supply/internal/repository"
)

// setupTestDB opens an in-memory database with the full schema migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.Plano{},
		&model.Cliente{},
		&model.Loja{},
		&model.LojaOwner{},
		&model.User{},
	)
	require.NoError(t, err)

	return db
}

// newLojaService wires a LojaService and its collaborators over db.
func newLojaService(db *gorm.DB) *LojaService {
	planoSvc := NewPlanoService(repository.NewPlanoRepository(db))
	limiteSvc := NewLimiteService(planoSvc)
	return NewLojaService(
		repository.NewLojaRepository(db),
		repository.NewLojaOwnerRepository(db),
		repository.NewClienteRepository(db),
		repository.NewUserRepository(db),
		limiteSvc,
	)
}

func seedPlano(t *testing.T, db *gorm.DB, nome string, limite int, preco float64) *model.Plano {
	t.Helper()
	plano := &model.Plano{Nome: nome, LimiteLojas: limite, Preco: preco}
	require.NoError(t, db.Create(plano).Error)
	return plano
}

func seedCliente(t *testing.T, db *gorm.DB, nome, email string, planoID *uint) *model.Cliente {
	t.Helper()
	cliente := &model.Cliente{Nome: nome, Email: email, PlanoID: planoID, Active: true}
	require.NoError(t, db.Create(cliente).Error)
	return cliente
}

func seedLoja(t *testing.T, db *gorm.DB, nome string, clienteID uint, publicada bool) *model.Loja {
	t.Helper()
	loja := &model.Loja{
		DocumentID: uuid.NewString(),
		Nome:       nome,
		ClienteID:  clienteID,
	}
	if publicada {
		now := time.Now()
		loja.PublishedAt = &now
	}
	require.NoError(t, db.Create(loja).Error)
	return loja
}

func seedUser(t *testing.T, db *gorm.DB, username, documentID string) *model.User {
	t.Helper()
	user := &model.User{
		DocumentID: documentID,
		Username:   username,
		Email:      username + "@supply.com",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func strPtr(s string) *string { return &s }
func uintPtr(v uint) *uint    { return &v }
func boolPtr(v bool) *bool    { return &v }
