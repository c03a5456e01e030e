// Package repository contains the raw-SQL data access layer together
// with the sentinel errors shared across repositories. Handlers match
// on these values with errors.Is to pick the HTTP status and the
// user-facing message; anything else is treated as a storage failure
// and surfaces as a 500.
package repository

import "errors"

// ErrUserNotFound is returned when a referenced user does not exist.
var ErrUserNotFound = errors.New("usuario no encontrado")

// ErrBookingNotFound is returned when a referenced booking does not exist.
var ErrBookingNotFound = errors.New("reserva no encontrada")

// ErrForbidden is returned when the acting user is neither the owner of
// the booking nor an administrator. Handlers translate it into 403.
var ErrForbidden = errors.New("forbidden")

// ErrAlreadyCancelled is returned on a second cancellation attempt.
// Cancellation is deliberately not idempotent; repeating it is an error.
var ErrAlreadyCancelled = errors.New("reserva ya cancelada")

// ErrSlotTaken is returned when an active booking already occupies the
// requested (court, date, hour) cell.
var ErrSlotTaken = errors.New("horario ya reservado")

// ErrTournamentNotFound is returned when a referenced tournament does
// not exist.
var ErrTournamentNotFound = errors.New("torneo no encontrado")

// ErrAlreadyRegistered is returned when the user already holds an
// active registration for the tournament.
var ErrAlreadyRegistered = errors.New("inscripcion duplicada")

// ErrRegistrationNotFound is returned when a referenced registration
// does not exist.
var ErrRegistrationNotFound = errors.New("inscripcion no encontrada")

// ErrRegistrationCancelled is returned when withdrawing a registration
// that was already cancelled.
var ErrRegistrationCancelled = errors.New("inscripcion ya cancelada")

// ErrPairNotFound is returned when a referenced pair does not exist.
var ErrPairNotFound = errors.New("pareja no encontrada")

// ErrPairExists is returned when the two players already form a pair.
var ErrPairExists = errors.New("pareja duplicada")

// ErrPairAssigned is returned when a pair is already assigned to the
// tournament.
var ErrPairAssigned = errors.New("pareja ya inscrita en el torneo")

// ErrTournamentState is returned when an operation is attempted against
// a tournament whose estado does not allow it (e.g. starting a bracket
// twice, assigning pairs once play has begun).
var ErrTournamentState = errors.New("estado de torneo no permite la operacion")

// ErrNotEnoughPairs is returned when a bracket is started with fewer
// than two assigned pairs.
var ErrNotEnoughPairs = errors.New("parejas insuficientes")

// ErrMatchNotFound is returned when a referenced match does not exist.
var ErrMatchNotFound = errors.New("partido no encontrado")

// ErrMatchResolved is returned when recording a result for a match that
// already has a winner.
var ErrMatchResolved = errors.New("partido ya resuelto")
