package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/padelgestionado/padel-club-api/internal/handler"
	"github.com/padelgestionado/padel-club-api/internal/middleware"
)

// RegisterRoutes registers routes that do not belong to the /api
// surface. Currently it exposes only a health check, used by load
// balancers and monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers every club endpoint under a single /api group.
// CORS and the rate limiter apply group-wide, so browser preflight
// OPTIONS requests are answered by the CORS middleware on all routes,
// console ones included. The console endpoints carry the JWT and role
// middleware per route instead of via a second group: two groups with
// the same prefix would each install their own not-found handler and
// the later one would swallow the preflights of the earlier one.
//
// The public endpoints take the acting user's id in the request body
// and authorization happens against the stored user record; only the
// tournament console requires a token with the ADMIN role.
func RegisterAPI(e *echo.Echo, av *handler.AvailabilityHandler, b *handler.BookingHandler, r *handler.RegistrationHandler, t *handler.TournamentHandler, jwtSecret string, rl echo.MiddlewareFunc) {
	api := e.Group("/api")
	api.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	if rl != nil {
		api.Use(rl)
	}

	// Availability grid for a given date.
	api.POST("/disponibilidad", av.Disponibilidad)

	// Booking writer.
	api.POST("/reservar", b.Reservar)
	api.POST("/cancelar_reserva", b.CancelarReserva)
	api.POST("/mis_reservas", b.MisReservas)

	// Individual tournament registrations.
	api.POST("/inscribir_torneo", r.InscribirTorneo)
	api.POST("/mis_inscripciones", r.MisInscripciones)
	api.POST("/cancelar_inscripcion", r.CancelarInscripcion)

	// Anyone can browse the tournament list.
	api.GET("/torneos", t.ListarTorneos)

	// Tournament console. These mutate tournament state so each route
	// requires a valid access token carrying the ADMIN role.
	admin := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	}
	api.POST("/torneos", t.CrearTorneo, admin...)
	api.GET("/parejas", t.ListarParejas, admin...)
	api.POST("/crear_pareja", t.CrearPareja, admin...)
	api.POST("/asignar_pareja_torneo", t.AsignarParejaTorneo, admin...)
	api.GET("/parejas_torneo", t.ParejasTorneo, admin...)
	api.POST("/iniciar_torneo", t.IniciarTorneo, admin...)
	api.GET("/listar_partidos", t.ListarPartidos, admin...)
	api.POST("/registrar_resultado", t.RegistrarResultado, admin...)
}
