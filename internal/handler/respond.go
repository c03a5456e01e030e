// Package handler contains the HTTP handlers for the club API. Every
// endpoint answers the same JSON envelope the front end expects:
// {"status":"ok", ...} on success and {"status":"error","message":...}
// on failure, with business-rule failures as 400, permission failures
// as 403 and storage failures as 500.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// User-facing messages shared across handlers.
const (
	msgBadJSON      = "Datos JSON inválidos"
	msgStorage      = "Error de base de datos"
	msgUserNotFound = "Usuario no encontrado"
)

// fail writes the error envelope with the given status code.
func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, echo.Map{"status": "error", "message": message})
}

// failStorage hides the underlying driver error from the client.
func failStorage(c echo.Context) error {
	return fail(c, http.StatusInternalServerError, msgStorage)
}
