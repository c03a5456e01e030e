package model

import "time"

// Booking states. A booking is created active and can only move to
// cancelled; the transition is terminal.
const (
	BookingActive    = "activa"
	BookingCancelled = "cancelada"
)

// Booking represents a row in the `reservas` table: one court for one
// hour slot on one calendar day. At most one active booking may exist
// per (cancha_id, fecha, hora) triple; the table enforces this with a
// unique key over a generated column that is NULL for cancelled rows.
//
// Fields:
//  ID                – primary key identifier.
//  UsuarioID         – owner of the booking.
//  CanchaID          – court from the fixed catalog.
//  Fecha             – calendar day in YYYY-MM-DD form.
//  Hora              – hour label from the fixed slot catalog.
//  Estado            – "activa" or "cancelada".
//  FechaCancelacion  – when the booking was cancelled (nil while active).
//  CreatedAt         – creation timestamp.
type Booking struct {
	ID               int        // reservas.id
	UsuarioID        int        // reservas.usuario_id
	CanchaID         int        // reservas.cancha_id
	Fecha            string     // reservas.fecha
	Hora             string     // reservas.hora
	Estado           string     // reservas.estado
	FechaCancelacion *time.Time // reservas.fecha_cancelacion (nullable)
	CreatedAt        time.Time  // reservas.created_at
}

// CancellationLog mirrors the `log_cancelaciones` audit table. A row is
// written in the same transaction as the booking's status change.
//
// Fields:
//  ID               – primary key identifier.
//  ReservaID        – booking that was cancelled.
//  UsuarioID        – user who performed the cancellation.
//  Motivo           – human-readable reason recorded for the audit trail.
//  FechaCancelacion – when the cancellation happened.
type CancellationLog struct {
	ID               int       // log_cancelaciones.id
	ReservaID        int       // log_cancelaciones.reserva_id
	UsuarioID        int       // log_cancelaciones.usuario_id
	Motivo           string    // log_cancelaciones.motivo
	FechaCancelacion time.Time // log_cancelaciones.fecha_cancelacion
}
