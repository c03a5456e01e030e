package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padelgestionado/padel-club-api/internal/repository"
)

// RegistrationHandler owns the individual tournament sign-up
// endpoints: inscribir_torneo, mis_inscripciones and
// cancelar_inscripcion.
type RegistrationHandler struct {
	Users         UserStore
	Tournaments   TournamentStore
	Registrations RegistrationStore
}

func NewRegistrationHandler(users UserStore, tournaments TournamentStore, regs RegistrationStore) *RegistrationHandler {
	return &RegistrationHandler{Users: users, Tournaments: tournaments, Registrations: regs}
}

// InscribirTorneo handles POST /api/inscribir_torneo. Administrators
// can never register; the role is read from the stored user record.
func (h *RegistrationHandler) InscribirTorneo(c echo.Context) error {
	var req struct {
		UsuarioID *int `json:"usuario_id"`
		TorneoID  *int `json:"torneo_id"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, msgBadJSON)
	}
	if req.UsuarioID == nil || req.TorneoID == nil {
		return fail(c, http.StatusBadRequest, "Campos usuario_id y torneo_id son obligatorios")
	}

	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, *req.UsuarioID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fail(c, http.StatusBadRequest, msgUserNotFound)
		}
		return failStorage(c)
	}
	if u.Admin {
		return fail(c, http.StatusBadRequest, "Los administradores no pueden inscribirse a torneos")
	}

	t, err := h.Tournaments.GetByID(ctx, *req.TorneoID)
	if err != nil {
		if errors.Is(err, repository.ErrTournamentNotFound) {
			return fail(c, http.StatusBadRequest, "Torneo no encontrado")
		}
		return failStorage(c)
	}

	reg, err := h.Registrations.Create(ctx, u.ID, t.ID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyRegistered) {
			return fail(c, http.StatusBadRequest, "Ya estás inscrito en este torneo")
		}
		return failStorage(c)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"message": "Inscripción realizada exitosamente",
		"torneo": echo.Map{
			"id":     t.ID,
			"nombre": t.Nombre,
		},
		"inscripcion_id": reg.ID,
	})
}

// MisInscripciones handles POST /api/mis_inscripciones. A user with no
// registrations gets an empty list and total 0, not an error.
func (h *RegistrationHandler) MisInscripciones(c echo.Context) error {
	var req struct {
		UsuarioID *int `json:"usuario_id"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, msgBadJSON)
	}
	if req.UsuarioID == nil {
		return fail(c, http.StatusBadRequest, "Campo usuario_id es obligatorio")
	}

	ctx := c.Request().Context()
	regs, err := h.Registrations.ListByUser(ctx, *req.UsuarioID)
	if err != nil {
		return failStorage(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":        "ok",
		"message":       "Inscripciones obtenidas exitosamente",
		"inscripciones": regs,
		"total":         len(regs),
	})
}

// CancelarInscripcion handles POST /api/cancelar_inscripcion. Only the
// registration's owner may withdraw it; like booking cancellation the
// operation is not idempotent.
func (h *RegistrationHandler) CancelarInscripcion(c echo.Context) error {
	var req struct {
		UsuarioID     *int `json:"usuario_id"`
		InscripcionID *int `json:"inscripcion_id"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, msgBadJSON)
	}
	if req.UsuarioID == nil || req.InscripcionID == nil {
		return fail(c, http.StatusBadRequest, "Faltan campos obligatorios: usuario_id e inscripcion_id")
	}
	if *req.UsuarioID <= 0 || *req.InscripcionID <= 0 {
		return fail(c, http.StatusBadRequest, "IDs inválidos")
	}

	ctx := c.Request().Context()
	err := h.Registrations.Withdraw(ctx, *req.InscripcionID, *req.UsuarioID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRegistrationNotFound):
			return fail(c, http.StatusBadRequest, "Inscripción no encontrada")
		case errors.Is(err, repository.ErrForbidden):
			return fail(c, http.StatusForbidden, "No tienes permisos para cancelar esta inscripción")
		case errors.Is(err, repository.ErrRegistrationCancelled):
			return fail(c, http.StatusBadRequest, "Esta inscripción ya fue cancelada")
		default:
			return failStorage(c)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"message": "Inscripción cancelada exitosamente",
	})
}
