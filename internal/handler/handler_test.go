package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hugoferreira-ai/api-supply/internal/model"
	"github.com/hugoferreira-ai/api-supply/internal/repository"
	"github.com/hugoferreira-ai/api-supply/internal/service"
)

// testEnv wires the full stack over an in-memory database, without the auth
// middleware so every route is reachable directly.
type testEnv struct {
	e  *echo.Echo
	db *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Plano{}, &model.Cliente{}, &model.Loja{}, &model.LojaOwner{}, &model.User{},
	))

	planoRepo := repository.NewPlanoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	lojaRepo := repository.NewLojaRepository(db)
	ownerRepo := repository.NewLojaOwnerRepository(db)
	userRepo := repository.NewUserRepository(db)

	planoSvc := service.NewPlanoService(planoRepo)
	limiteSvc := service.NewLimiteService(planoSvc)
	clienteSvc := service.NewClienteService(clienteRepo, planoSvc)
	lojaSvc := service.NewLojaService(lojaRepo, ownerRepo, clienteRepo, userRepo, limiteSvc)

	clienteHandler := NewClienteHandler(clienteSvc, planoSvc)
	lojaHandler := NewLojaHandler(lojaSvc)

	e := echo.New()
	clientes := e.Group("/clientes")
	clientes.GET("", clienteHandler.List)
	clientes.GET("/planos-disponiveis", clienteHandler.GetPlanosDisponiveis)
	clientes.GET("/plano/:planoId", clienteHandler.GetPlanoInfo)
	clientes.GET("/:id", clienteHandler.Get)
	clientes.POST("", clienteHandler.Create)
	clientes.PUT("/:id", clienteHandler.Update)
	clientes.DELETE("/:id", clienteHandler.Delete)

	lojas := e.Group("/lojas")
	lojas.GET("", lojaHandler.List)
	lojas.GET("/:id", lojaHandler.Get)
	lojas.POST("", lojaHandler.Create)
	lojas.PUT("/:id", lojaHandler.Update)
	lojas.DELETE("/:id", lojaHandler.Delete)

	return &testEnv{e: e, db: db}
}

// request performs an HTTP request against the test router and returns the
// recorded response.
func (env *testEnv) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (env *testEnv) seedPlano(t *testing.T, nome string, limite int, preco float64) *model.Plano {
	t.Helper()
	plano := &model.Plano{Nome: nome, LimiteLojas: limite, Preco: preco}
	require.NoError(t, env.db.Create(plano).Error)
	return plano
}

func (env *testEnv) seedCliente(t *testing.T, nome, email string, planoID uint) *model.Cliente {
	t.Helper()
	cliente := &model.Cliente{Nome: nome, Email: email, PlanoID: &planoID, Active: true}
	require.NoError(t, env.db.Create(cliente).Error)
	return cliente
}

func (env *testEnv) seedUser(t *testing.T, username string) *model.User {
	t.Helper()
	user := &model.User{
		DocumentID: uuid.NewString(),
		Username:   username,
		Email:      fmt.Sprintf("%s@supply.com", username),
		Confirmed:  true,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}
