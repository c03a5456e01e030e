package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padelgestionado/padel-club-api/internal/availability"
	"github.com/padelgestionado/padel-club-api/internal/cache"
	"github.com/padelgestionado/padel-club-api/internal/catalog"
)

// AvailabilityHandler serves the per-day court/slot grid. The grid is
// computed from the fixed catalogs and the day's active bookings, so it
// always has exactly 3 courts x 13 slots however many bookings exist.
type AvailabilityHandler struct {
	Bookings BookingStore
	Cache    *cache.AvailabilityCache // nil disables caching
}

func NewAvailabilityHandler(bookings BookingStore, c *cache.AvailabilityCache) *AvailabilityHandler {
	return &AvailabilityHandler{Bookings: bookings, Cache: c}
}

// Disponibilidad handles POST /api/disponibilidad.
func (h *AvailabilityHandler) Disponibilidad(c echo.Context) error {
	var req struct {
		Fecha *string `json:"fecha"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, msgBadJSON)
	}
	if req.Fecha == nil {
		return fail(c, http.StatusBadRequest, "Campo fecha es obligatorio")
	}
	fecha := *req.Fecha
	if !catalog.ValidDate(fecha) {
		return fail(c, http.StatusBadRequest, "Formato de fecha inválido. Use YYYY-MM-DD")
	}

	ctx := c.Request().Context()
	if grid, ok := h.Cache.Get(ctx, fecha); ok {
		return c.JSON(http.StatusOK, echo.Map{
			"status":         "ok",
			"fecha":          fecha,
			"disponibilidad": grid,
		})
	}

	bookings, err := h.Bookings.ListActiveForDate(ctx, fecha)
	if err != nil {
		return failStorage(c)
	}
	grid := availability.BuildGrid(bookings)
	h.Cache.Set(ctx, fecha, grid)

	return c.JSON(http.StatusOK, echo.Map{
		"status":         "ok",
		"fecha":          fecha,
		"disponibilidad": grid,
	})
}
