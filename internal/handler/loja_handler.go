package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hugoferreira-ai/api-supply/internal/service"
	"github.com/hugoferreira-ai/api-supply/pkg/logger"
	"github.com/hugoferreira-ai/api-supply/prometheus"
)

// LojaHandler exposes the loja endpoints. All lifecycle rules (plan limit,
// owner-link synchronization, id migration) live in the service; the handler
// only binds requests and translates errors.
type LojaHandler struct {
	lojas *service.LojaService
}

// NewLojaHandler creates the loja handler.
func NewLojaHandler(lojas *service.LojaService) *LojaHandler {
	return &LojaHandler{lojas: lojas}
}

// List handles GET /lojas
func (h *LojaHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLojaOperation("list")
	defer prometheus.TrackDBOperation("query")(time.Now())

	lojas, err := h.lojas.Find(c.Request().Context())
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": lojas})
}

// Get handles GET /lojas/:id — the id may be the internal id or the stable
// document id.
func (h *LojaHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLojaOperation("get")
	defer prometheus.TrackDBOperation("query")(time.Now())

	loja, err := h.lojas.FindOne(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": loja})
}

// Create handles POST /lojas
func (h *LojaHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLojaOperation("create")

	var input service.LojaInput
	if err := c.Bind(&input); err != nil {
		log.Error("Erro ao interpretar requisição de loja", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "requisição inválida"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	loja, err := h.lojas.Create(c.Request().Context(), input)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Loja criada",
		zap.Uint("id", loja.ID),
		zap.String("document_id", loja.DocumentID),
		zap.Uint("cliente_id", loja.ClienteID))
	return c.JSON(http.StatusCreated, echo.Map{"data": loja})
}

// Update handles PUT /lojas/:id
func (h *LojaHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLojaOperation("update")

	var input service.LojaInput
	if err := c.Bind(&input); err != nil {
		log.Error("Erro ao interpretar requisição de loja", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "requisição inválida"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	loja, err := h.lojas.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Loja atualizada",
		zap.Uint("id", loja.ID),
		zap.String("document_id", loja.DocumentID))
	return c.JSON(http.StatusOK, echo.Map{"data": loja})
}

// Delete handles DELETE /lojas/:id
func (h *LojaHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLojaOperation("delete")
	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.lojas.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Loja removida", zap.String("id", c.Param("id")))
	return c.NoContent(http.StatusNoContent)
}
