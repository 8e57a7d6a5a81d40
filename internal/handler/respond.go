package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hugoferreira-ai/api-supply/internal/apperr"
)

// respondError translates an application error into the HTTP response and
// logs it. Unexpected errors log the underlying cause but never leak it to
// the caller.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	appErr := apperr.From(err)

	if appErr.Kind == apperr.KindUnexpected {
		log.Error("Erro inesperado",
			zap.String("path", c.Path()),
			zap.String("method", c.Request().Method),
			zap.Error(appErr))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "erro interno"})
	}

	log.Info("Requisição rejeitada",
		zap.String("path", c.Path()),
		zap.String("kind", string(appErr.Kind)),
		zap.String("message", appErr.Message))
	return c.JSON(appErr.Kind.HTTPStatus(), echo.Map{"error": appErr.Message})
}
