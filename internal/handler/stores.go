package handler

import (
	"context"
	"time"

	"github.com/padelgestionado/padel-club-api/internal/model"
	"github.com/padelgestionado/padel-club-api/internal/queue"
	"github.com/padelgestionado/padel-club-api/internal/repository"
)

// The handlers depend on these narrow interfaces rather than on the
// concrete repositories so tests can exercise the full HTTP surface
// with in-memory fakes. The repository types satisfy them as is.

// UserStore resolves users for authorization and existence checks.
type UserStore interface {
	GetByID(ctx context.Context, id int) (model.User, error)
}

// BookingStore covers the booking writer and the availability read.
type BookingStore interface {
	ListActiveForDate(ctx context.Context, fecha string) ([]model.Booking, error)
	GetByID(ctx context.Context, id int) (model.Booking, error)
	Create(ctx context.Context, usuarioID, canchaID int, fecha, hora string) (model.Booking, error)
	Cancel(ctx context.Context, reservaID, usuarioID int, motivo string) (time.Time, error)
	ListByUser(ctx context.Context, usuarioID int) ([]model.Booking, error)
}

// RegistrationStore covers individual tournament sign-ups.
type RegistrationStore interface {
	Create(ctx context.Context, usuarioID, torneoID int) (model.Registration, error)
	ListByUser(ctx context.Context, usuarioID int) ([]repository.RegistrationDetail, error)
	Withdraw(ctx context.Context, inscripcionID, usuarioID int) error
}

// TournamentStore covers the torneos table.
type TournamentStore interface {
	GetByID(ctx context.Context, id int) (model.Tournament, error)
	List(ctx context.Context) ([]model.Tournament, error)
	Create(ctx context.Context, nombre, descripcion, fecha string) (model.Tournament, error)
}

// PairStore covers pairs and their tournament assignments.
type PairStore interface {
	Create(ctx context.Context, jugador1ID, jugador2ID int) (model.Pair, error)
	List(ctx context.Context) ([]repository.PairDetail, error)
	GetByID(ctx context.Context, id int) (model.Pair, error)
	Assign(ctx context.Context, torneoID, parejaID int) error
	ListAssigned(ctx context.Context, torneoID int) ([]int, error)
}

// MatchStore covers bracket generation and result entry.
type MatchStore interface {
	StartTournament(ctx context.Context, torneoID int) ([]model.Match, error)
	ListByTournament(ctx context.Context, torneoID int) ([]model.Match, error)
	RecordResult(ctx context.Context, partidoID, resultado1, resultado2 int) (model.Match, error)
}

// EventPublisher receives booking events after a successful write.
// Publishing is best-effort; failures never fail the request.
type EventPublisher interface {
	Publish(ctx context.Context, event queue.ReservaEvent) error
}
