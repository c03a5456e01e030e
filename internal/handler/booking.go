package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/padelgestionado/padel-club-api/internal/cache"
	"github.com/padelgestionado/padel-club-api/internal/catalog"
	"github.com/padelgestionado/padel-club-api/internal/model"
	"github.com/padelgestionado/padel-club-api/internal/queue"
	"github.com/padelgestionado/padel-club-api/internal/repository"
)

// BookingHandler owns the reservar / cancelar_reserva / mis_reservas
// endpoints. Authorization is always decided against the stored user
// record, never against anything the client claims about itself.
type BookingHandler struct {
	Users     UserStore
	Bookings  BookingStore
	Cache     *cache.AvailabilityCache
	Publisher EventPublisher // nil disables event publishing
}

func NewBookingHandler(users UserStore, bookings BookingStore, c *cache.AvailabilityCache, pub EventPublisher) *BookingHandler {
	return &BookingHandler{Users: users, Bookings: bookings, Cache: c, Publisher: pub}
}

// reservaJSON is the booking shape returned to the front end.
type reservaJSON struct {
	ID               int    `json:"id"`
	UsuarioID        int    `json:"usuario_id"`
	CanchaID         int    `json:"cancha_id"`
	CanchaNombre     string `json:"cancha_nombre"`
	Fecha            string `json:"fecha"`
	Hora             string `json:"hora"`
	Estado           string `json:"estado"`
	FechaCancelacion string `json:"fecha_cancelacion,omitempty"`
}

func toReservaJSON(b model.Booking) reservaJSON {
	out := reservaJSON{
		ID:           b.ID,
		UsuarioID:    b.UsuarioID,
		CanchaID:     b.CanchaID,
		CanchaNombre: catalog.CourtName(b.CanchaID),
		Fecha:        b.Fecha,
		Hora:         b.Hora,
		Estado:       b.Estado,
	}
	if b.FechaCancelacion != nil {
		out.FechaCancelacion = b.FechaCancelacion.Format("2006-01-02 15:04:05")
	}
	return out
}

func (h *BookingHandler) publish(c echo.Context, tipo string, b model.Booking, canceladoPor string) {
	if h.Publisher == nil {
		return
	}
	// Best effort: the write already committed, a lost event only
	// costs an audit line.
	_ = h.Publisher.Publish(c.Request().Context(), queue.ReservaEvent{
		EventID:      uuid.NewString(),
		Tipo:         tipo,
		ReservaID:    b.ID,
		UsuarioID:    b.UsuarioID,
		CanchaID:     b.CanchaID,
		CanchaNombre: catalog.CourtName(b.CanchaID),
		Fecha:        b.Fecha,
		Hora:         b.Hora,
		CanceladoPor: canceladoPor,
		OcurridoEn:   time.Now().UTC().Format(time.RFC3339),
	})
}

// Reservar handles POST /api/reservar. The conflict check runs inside
// the repository's transaction, so two simultaneous requests for the
// same cell cannot both succeed.
func (h *BookingHandler) Reservar(c echo.Context) error {
	var req struct {
		UsuarioID *int    `json:"usuario_id"`
		CanchaID  *int    `json:"cancha_id"`
		Fecha     *string `json:"fecha"`
		Hora      *string `json:"hora"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, msgBadJSON)
	}
	if req.UsuarioID == nil || req.CanchaID == nil || req.Fecha == nil || req.Hora == nil {
		return fail(c, http.StatusBadRequest, "Faltan campos obligatorios: usuario_id, cancha_id, fecha y hora")
	}
	if *req.UsuarioID <= 0 {
		return fail(c, http.StatusBadRequest, "IDs inválidos")
	}
	if !catalog.ValidCourt(*req.CanchaID) {
		return fail(c, http.StatusBadRequest, "Cancha inválida")
	}
	if !catalog.ValidDate(*req.Fecha) {
		return fail(c, http.StatusBadRequest, "Formato de fecha inválido. Use YYYY-MM-DD")
	}
	if !catalog.ValidSlot(*req.Hora) {
		return fail(c, http.StatusBadRequest, "Hora inválida")
	}

	ctx := c.Request().Context()
	if _, err := h.Users.GetByID(ctx, *req.UsuarioID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fail(c, http.StatusBadRequest, msgUserNotFound)
		}
		return failStorage(c)
	}

	b, err := h.Bookings.Create(ctx, *req.UsuarioID, *req.CanchaID, *req.Fecha, *req.Hora)
	if err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return fail(c, http.StatusBadRequest, "La cancha ya está reservada en ese horario")
		}
		return failStorage(c)
	}

	h.Cache.Invalidate(ctx, b.Fecha)
	h.publish(c, queue.EventReservaCreada, b, "")

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"message": "Reserva realizada exitosamente",
		"reserva": toReservaJSON(b),
	})
}

// CancelarReserva handles POST /api/cancelar_reserva. An administrator
// may cancel any booking; everyone else only their own. Cancelling an
// already-cancelled booking is an error, not a no-op.
func (h *BookingHandler) CancelarReserva(c echo.Context) error {
	var req struct {
		UsuarioID *int `json:"usuario_id"`
		ReservaID *int `json:"reserva_id"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, msgBadJSON)
	}
	if req.UsuarioID == nil || req.ReservaID == nil {
		return fail(c, http.StatusBadRequest, "Faltan campos obligatorios: usuario_id y reserva_id")
	}
	if *req.UsuarioID <= 0 || *req.ReservaID <= 0 {
		return fail(c, http.StatusBadRequest, "IDs inválidos")
	}

	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, *req.UsuarioID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fail(c, http.StatusBadRequest, msgUserNotFound)
		}
		return failStorage(c)
	}
	b, err := h.Bookings.GetByID(ctx, *req.ReservaID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return fail(c, http.StatusBadRequest, "Reserva no encontrada")
		}
		return failStorage(c)
	}

	var motivo, canceladoPor string
	switch {
	case u.Admin:
		motivo = "Administrador cancelando reserva"
		canceladoPor = "administrador"
	case b.UsuarioID == u.ID:
		motivo = "Usuario cancelando su propia reserva"
		canceladoPor = "usuario"
	default:
		return fail(c, http.StatusForbidden, "No tienes permisos para cancelar esta reserva")
	}

	cancelledAt, err := h.Bookings.Cancel(ctx, b.ID, u.ID, motivo)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyCancelled):
			return fail(c, http.StatusBadRequest, "Esta reserva ya fue cancelada anteriormente")
		case errors.Is(err, repository.ErrBookingNotFound):
			return fail(c, http.StatusBadRequest, "Reserva no encontrada")
		default:
			return failStorage(c)
		}
	}

	h.Cache.Invalidate(ctx, b.Fecha)
	h.publish(c, queue.EventReservaCancelada, b, canceladoPor)

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"message": "Reserva cancelada exitosamente",
		"data": echo.Map{
			"reserva_id":        b.ID,
			"fecha_cancelacion": cancelledAt.Format("2006-01-02 15:04:05"),
			"cancelado_por":     canceladoPor,
		},
	})
}

// MisReservas handles POST /api/mis_reservas. Cancelled bookings are
// included so the client can show the full history; an empty list is a
// success, not an error.
func (h *BookingHandler) MisReservas(c echo.Context) error {
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
	bookings, err := h.Bookings.ListByUser(ctx, *req.UsuarioID)
	if err != nil {
		return failStorage(c)
	}
	out := make([]reservaJSON, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toReservaJSON(b))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":   "ok",
		"reservas": out,
		"total":    len(out),
	})
}
