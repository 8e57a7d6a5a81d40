package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hugoferreira-ai/api-supply/internal/service"
	"github.com/hugoferreira-ai/api-supply/pkg/logger"
	"github.com/hugoferreira-ai/api-supply/prometheus"
)

// ClienteHandler exposes the cliente endpoints, including the plan registry
// lookups the mobile app uses to render available tiers.
type ClienteHandler struct {
	clientes *service.ClienteService
	planos   *service.PlanoService
}

// NewClienteHandler creates the cliente handler.
func NewClienteHandler(clientes *service.ClienteService, planos *service.PlanoService) *ClienteHandler {
	return &ClienteHandler{clientes: clientes, planos: planos}
}

// List handles GET /clientes
func (h *ClienteHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordClienteOperation("list")
	defer prometheus.TrackDBOperation("query")(time.Now())

	clientes, err := h.clientes.List(c.Request().Context())
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": clientes})
}

// Get handles GET /clientes/:id
func (h *ClienteHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordClienteOperation("get")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Warn("ID de cliente inválido", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ID de cliente inválido"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	cliente, err := h.clientes.Get(c.Request().Context(), uint(id))
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": cliente})
}

// Create handles POST /clientes
func (h *ClienteHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordClienteOperation("create")

	var input service.ClienteInput
	if err := c.Bind(&input); err != nil {
		log.Error("Erro ao interpretar requisição de cliente", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "requisição inválida"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	cliente, err := h.clientes.Create(c.Request().Context(), input)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Cliente criado",
		zap.Uint("id", cliente.ID),
		zap.String("email", cliente.Email))
	return c.JSON(http.StatusCreated, echo.Map{"data": cliente})
}

// Update handles PUT /clientes/:id
func (h *ClienteHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordClienteOperation("update")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Warn("ID de cliente inválido", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ID de cliente inválido"})
	}

	var input service.ClienteInput
	if err := c.Bind(&input); err != nil {
		log.Error("Erro ao interpretar requisição de cliente", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "requisição inválida"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	cliente, err := h.clientes.Update(c.Request().Context(), uint(id), input)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Cliente atualizado", zap.Uint("id", cliente.ID))
	return c.JSON(http.StatusOK, echo.Map{"data": cliente})
}

// Delete handles DELETE /clientes/:id
func (h *ClienteHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordClienteOperation("delete")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Warn("ID de cliente inválido", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ID de cliente inválido"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.clientes.Delete(c.Request().Context(), uint(id)); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Cliente removido", zap.Uint64("id", id))
	return c.NoContent(http.StatusNoContent)
}

// GetPlanoInfo handles GET /clientes/plano/:planoId
func (h *ClienteHandler) GetPlanoInfo(c echo.Context) error {
	log := logger.FromContext(c)

	planoID, err := strconv.ParseUint(c.Param("planoId"), 10, 32)
	if err != nil {
		log.Warn("ID de plano inválido", zap.String("plano_id", c.Param("planoId")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ID de plano inválido"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	info, err := h.planos.GetInfo(c.Request().Context(), uint(planoID))
	if err != nil {
		return respondError(c, log, err)
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Plano não encontrado"})
	}

	// The info endpoint overrides the stored description with the cap it
	// implies, so the app never renders stale text.
	info.Descricao = service.DescricaoLimite(info.LimiteLojas)
	return c.JSON(http.StatusOK, echo.Map{"data": info})
}

// GetPlanosDisponiveis handles GET /clientes/planos-disponiveis
func (h *ClienteHandler) GetPlanosDisponiveis(c echo.Context) error {
	log := logger.FromContext(c)
	defer prometheus.TrackDBOperation("query")(time.Now())

	planos, err := h.planos.List(c.Request().Context())
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": planos})
}
