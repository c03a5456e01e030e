package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/padelgestionado/padel-club-api/internal/catalog"
	"github.com/padelgestionado/padel-club-api/internal/model"
	"github.com/padelgestionado/padel-club-api/internal/repository"
)

// TournamentHandler owns the tournament console: listing and creating
// tournaments, pair management, bracket start and result entry.
type TournamentHandler struct {
	Users       UserStore
	Tournaments TournamentStore
	Pairs       PairStore
	Matches     MatchStore
}

func NewTournamentHandler(users UserStore, tournaments TournamentStore, pairs PairStore, matches MatchStore) *TournamentHandler {
	return &TournamentHandler{Users: users, Tournaments: tournaments, Pairs: pairs, Matches: matches}
}

type torneoJSON struct {
	ID              int    `json:"id"`
	Nombre          string `json:"nombre"`
	Descripcion     string `json:"descripcion"`
	Fecha           string `json:"fecha"`
	Estado          string `json:"estado"`
	GanadorParejaID *int   `json:"ganador_pareja_id,omitempty"`
}

func toTorneoJSON(t model.Tournament) torneoJSON {
	return torneoJSON{
		ID:              t.ID,
		Nombre:          t.Nombre,
		Descripcion:     t.Descripcion,
		Fecha:           t.Fecha,
		Estado:          t.Estado,
		GanadorParejaID: t.GanadorParejaID,
	}
}

type partidoJSON struct {
	ID               int  `json:"id"`
	TorneoID         int  `json:"torneo_id"`
	Ronda            int  `json:"ronda"`
	Pareja1ID        int  `json:"pareja1_id"`
	Pareja2ID        *int `json:"pareja2_id"`
	ResultadoPareja1 *int `json:"resultado_pareja1"`
	ResultadoPareja2 *int `json:"resultado_pareja2"`
	GanadorID        *int `json:"ganador_id"`
}

func toPartidoJSON(m model.Match) partidoJSON {
	return partidoJSON{
		ID:               m.ID,
		TorneoID:         m.TorneoID,
		Ronda:            m.Ronda,
		Pareja1ID:        m.Pareja1ID,
		Pareja2ID:        m.Pareja2ID,
		ResultadoPareja1: m.ResultadoPareja1,
		ResultadoPareja2: m.ResultadoPareja2,
		GanadorID:        m.GanadorID,
	}
}

func toPartidosJSON(ms []model.Match) []partidoJSON {
	out := make([]partidoJSON, 0, len(ms))
	for _, m := range ms {
		out = append(out, toPartidoJSON(m))
	}
	return out
}

// ListarTorneos handles GET /api/torneos.
func (h *TournamentHandler) ListarTorneos(c echo.Context) error {
	ts, err := h.Tournaments.List(c.Request().Context())
	if err != nil {
		return failStorage(c)
	}
	out := make([]torneoJSON, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTorneoJSON(t))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"torneos": out,
		"total":   len(out),
	})
}

// CrearTorneo handles POST /api/torneos (admin only).
func (h *TournamentHandler) CrearTorneo(c echo.Context) error {
	var req struct {
		Nombre      string `json:"nombre"`
		Descripcion string `json:"descripcion"`
		Fecha       string `json:"fecha"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, msgBadJSON)
	}
	req.Nombre = strings.TrimSpace(req.Nombre)
	if req.Nombre == "" || req.Fecha == "" {
		return fail(c, http.StatusBadRequest, "Campos nombre y fecha son obligatorios")
	}
	if !catalog.ValidDate(req.Fecha) {
		return fail(c, http.StatusBadRequest, "Formato de fecha inválido. Use YYYY-MM-DD")
	}

	t, err := h.Tournaments.Create(c.Request().Context(), req.Nombre, req.Descripcion, req.Fecha)
	if err != nil {
		return failStorage(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"message": "Torneo creado exitosamente",
		"torneo":  toTorneoJSON(t),
	})
}

// ListarParejas handles GET /api/parejas (admin only).
func (h *TournamentHandler) ListarParejas(c echo.Context) error {
	pairs, err := h.Pairs.List(c.Request().Context())
	if err != nil {
		return failStorage(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"parejas": pairs,
		"total":   len(pairs),
	})
}

// CrearPareja handles POST /api/crear_pareja (admin only). Both
// players must exist and neither may be an administrator.
func (h *TournamentHandler) CrearPareja(c echo.Context) error {
	var req struct {
		Jugador1ID *int `json:"jugador1_id"`
		Jugador2ID *int `json:"jugador2_id"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, msgBadJSON)
	}
	if req.Jugador1ID == nil || req.Jugador2ID == nil {
		return fail(c, http.StatusBadRequest, "Campos jugador1_id y jugador2_id son obligatorios")
	}
	if *req.Jugador1ID <= 0 || *req.Jugador2ID <= 0 {
		return fail(c, http.StatusBadRequest, "IDs inválidos")
	}
	if *req.Jugador1ID == *req.Jugador2ID {
		return fail(c, http.StatusBadRequest, "Los jugadores deben ser distintos")
	}

	ctx := c.Request().Context()
	for _, id := range []int{*req.Jugador1ID, *req.Jugador2ID} {
		u, err := h.Users.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return fail(c, http.StatusBadRequest, msgUserNotFound)
			}
			return failStorage(c)
		}
		if u.Admin {
			return fail(c, http.StatusBadRequest, "Los administradores no pueden formar parejas")
		}
	}

	p, err := h.Pairs.Create(ctx, *req.Jugador1ID, *req.Jugador2ID)
	if err != nil {
		if errors.Is(err, repository.ErrPairExists) {
			return fail(c, http.StatusBadRequest, "Esta pareja ya existe")
		}
		return failStorage(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"message": "Pareja creada exitosamente",
		"pareja": echo.Map{
			"id":          p.ID,
			"jugador1_id": p.Jugador1ID,
			"jugador2_id": p.Jugador2ID,
		},
	})
}

// AsignarParejaTorneo handles POST /api/asignar_pareja_torneo (admin
// only). Pairs can only join tournaments that have not started.
func (h *TournamentHandler) AsignarParejaTorneo(c echo.Context) error {
	var req struct {
		TorneoID *int `json:"torneo_id"`
		ParejaID *int `json:"pareja_id"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, msgBadJSON)
	}
	if req.TorneoID == nil || req.ParejaID == nil {
		return fail(c, http.StatusBadRequest, "Campos torneo_id y pareja_id son obligatorios")
	}

	ctx := c.Request().Context()
	t, err := h.Tournaments.GetByID(ctx, *req.TorneoID)
	if err != nil {
		if errors.Is(err, repository.ErrTournamentNotFound) {
			return fail(c, http.StatusBadRequest, "Torneo no encontrado")
		}
		return failStorage(c)
	}
	if t.Estado != model.TournamentOpen {
		return fail(c, http.StatusBadRequest, "El torneo ya fue iniciado")
	}
	if _, err := h.Pairs.GetByID(ctx, *req.ParejaID); err != nil {
		if errors.Is(err, repository.ErrPairNotFound) {
			return fail(c, http.StatusBadRequest, "Pareja no encontrada")
		}
		return failStorage(c)
	}

	if err := h.Pairs.Assign(ctx, t.ID, *req.ParejaID); err != nil {
		if errors.Is(err, repository.ErrPairAssigned) {
			return fail(c, http.StatusBadRequest, "La pareja ya está inscrita en este torneo")
		}
		return failStorage(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"message": "Pareja inscrita en el torneo",
	})
}

// ParejasTorneo handles GET /api/parejas_torneo?torneo_id= (admin
// only). It returns the pair IDs assigned to the tournament in
// assignment order, which is the seeding order of round one.
func (h *TournamentHandler) ParejasTorneo(c echo.Context) error {
	raw := c.QueryParam("torneo_id")
	if raw == "" {
		return fail(c, http.StatusBadRequest, "Campo torneo_id es obligatorio")
	}
	torneoID, err := strconv.Atoi(raw)
	if err != nil || torneoID <= 0 {
		return fail(c, http.StatusBadRequest, "IDs inválidos")
	}

	ctx := c.Request().Context()
	if _, err := h.Tournaments.GetByID(ctx, torneoID); err != nil {
		if errors.Is(err, repository.ErrTournamentNotFound) {
			return fail(c, http.StatusBadRequest, "Torneo no encontrado")
		}
		return failStorage(c)
	}

	ids, err := h.Pairs.ListAssigned(ctx, torneoID)
	if err != nil {
		return failStorage(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"parejas": ids,
		"total":   len(ids),
	})
}

// IniciarTorneo handles POST /api/iniciar_torneo (admin only). It
// generates the first round of the single elimination bracket.
func (h *TournamentHandler) IniciarTorneo(c echo.Context) error {
	var req struct {
		TorneoID *int `json:"torneo_id"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, msgBadJSON)
	}
	if req.TorneoID == nil {
		return fail(c, http.StatusBadRequest, "Campo torneo_id es obligatorio")
	}

	partidos, err := h.Matches.StartTournament(c.Request().Context(), *req.TorneoID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTournamentNotFound):
			return fail(c, http.StatusBadRequest, "Torneo no encontrado")
		case errors.Is(err, repository.ErrTournamentState):
			return fail(c, http.StatusBadRequest, "El torneo ya fue iniciado")
		case errors.Is(err, repository.ErrNotEnoughPairs):
			return fail(c, http.StatusBadRequest, "Se necesitan al menos 2 parejas inscritas")
		default:
			return failStorage(c)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":   "ok",
		"message":  "Torneo iniciado",
		"partidos": toPartidosJSON(partidos),
	})
}

// ListarPartidos handles GET /api/listar_partidos?torneo_id= (admin
// only).
func (h *TournamentHandler) ListarPartidos(c echo.Context) error {
	raw := c.QueryParam("torneo_id")
	if raw == "" {
		return fail(c, http.StatusBadRequest, "Campo torneo_id es obligatorio")
	}
	torneoID, err := strconv.Atoi(raw)
	if err != nil || torneoID <= 0 {
		return fail(c, http.StatusBadRequest, "IDs inválidos")
	}

	ctx := c.Request().Context()
	if _, err := h.Tournaments.GetByID(ctx, torneoID); err != nil {
		if errors.Is(err, repository.ErrTournamentNotFound) {
			return fail(c, http.StatusBadRequest, "Torneo no encontrado")
		}
		return failStorage(c)
	}

	partidos, err := h.Matches.ListByTournament(ctx, torneoID)
	if err != nil {
		return failStorage(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":   "ok",
		"partidos": toPartidosJSON(partidos),
		"total":    len(partidos),
	})
}

// RegistrarResultado handles POST /api/registrar_resultado (admin
// only). Recording the last pending result of a round generates the
// next one, or crowns the champion when a single winner remains.
func (h *TournamentHandler) RegistrarResultado(c echo.Context) error {
	var req struct {
		PartidoID        *int `json:"partido_id"`
		ResultadoPareja1 *int `json:"resultado_pareja1"`
		ResultadoPareja2 *int `json:"resultado_pareja2"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, msgBadJSON)
	}
	if req.PartidoID == nil || req.ResultadoPareja1 == nil || req.ResultadoPareja2 == nil {
		return fail(c, http.StatusBadRequest, "Faltan campos obligatorios: partido_id, resultado_pareja1 y resultado_pareja2")
	}
	if *req.ResultadoPareja1 < 0 || *req.ResultadoPareja2 < 0 {
		return fail(c, http.StatusBadRequest, "Resultados inválidos")
	}
	if *req.ResultadoPareja1 == *req.ResultadoPareja2 {
		return fail(c, http.StatusBadRequest, "El resultado no puede ser un empate")
	}

	partido, err := h.Matches.RecordResult(c.Request().Context(), *req.PartidoID, *req.ResultadoPareja1, *req.ResultadoPareja2)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMatchNotFound):
			return fail(c, http.StatusBadRequest, "Partido no encontrado")
		case errors.Is(err, repository.ErrMatchResolved):
			return fail(c, http.StatusBadRequest, "El partido ya tiene un resultado")
		default:
			return failStorage(c)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"message": "Resultado registrado exitosamente",
		"partido": toPartidoJSON(partido),
	})
}
