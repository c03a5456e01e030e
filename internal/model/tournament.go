package model

import "time"

// Tournament states. A tournament opens for registration, moves to
// en_curso when the bracket is generated and to finalizado once the
// final match has a winner.
const (
	TournamentOpen     = "abierto"
	TournamentRunning  = "en_curso"
	TournamentFinished = "finalizado"
)

// Registration states for inscripciones_torneos rows.
const (
	RegistrationActive    = "activa"
	RegistrationCancelled = "cancelada"
)

// Tournament represents a row in the `torneos` table.
type Tournament struct {
	ID              int       // torneos.id
	Nombre          string    // torneos.nombre
	Descripcion     string    // torneos.descripcion
	Fecha           string    // torneos.fecha (YYYY-MM-DD)
	Estado          string    // torneos.estado
	GanadorParejaID *int      // torneos.ganador_pareja_id (nullable)
	CreatedAt       time.Time // torneos.created_at
}

// Registration represents a row in `inscripciones_torneos`: one user's
// individual sign-up to a tournament. At most one active registration
// may exist per (usuario_id, torneo_id) pair and administrators may
// never hold one.
type Registration struct {
	ID               int       // inscripciones_torneos.id
	UsuarioID        int       // inscripciones_torneos.usuario_id
	TorneoID         int       // inscripciones_torneos.torneo_id
	FechaInscripcion time.Time // inscripciones_torneos.fecha_inscripcion
	Estado           string    // inscripciones_torneos.estado
}

// Pair represents a row in `parejas`: two distinct players who compete
// together in the tournament bracket.
type Pair struct {
	ID         int       // parejas.id
	Jugador1ID int       // parejas.jugador1_id
	Jugador2ID int       // parejas.jugador2_id
	CreatedAt  time.Time // parejas.created_at
}

// Match represents a row in `partidos`. Pareja2ID is nil for a bye, in
// which case the match is resolved immediately with pareja1 as winner.
type Match struct {
	ID               int  // partidos.id
	TorneoID         int  // partidos.torneo_id
	Ronda            int  // partidos.ronda (1-based)
	Pareja1ID        int  // partidos.pareja1_id
	Pareja2ID        *int // partidos.pareja2_id (nullable: bye)
	ResultadoPareja1 *int // partidos.resultado_pareja1 (nullable)
	ResultadoPareja2 *int // partidos.resultado_pareja2 (nullable)
	GanadorID        *int // partidos.ganador_id (nullable)
}
