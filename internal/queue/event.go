// Package queue defines message payloads exchanged over the message
// broker and the background consumer that turns them into the booking
// audit log.
package queue

// Event types published on the reservas.eventos queue.
const (
	EventReservaCreada    = "reserva.creada"
	EventReservaCancelada = "reserva.cancelada"
)

// ReservaEvent is published after a booking create or cancel commits.
// It carries enough information for downstream consumers to log or
// notify without querying the primary database.
type ReservaEvent struct {
	EventID      string `json:"event_id"`
	Tipo         string `json:"tipo"`
	ReservaID    int    `json:"reserva_id"`
	UsuarioID    int    `json:"usuario_id"`
	CanchaID     int    `json:"cancha_id"`
	CanchaNombre string `json:"cancha_nombre"`
	Fecha        string `json:"fecha"`
	Hora         string `json:"hora"`
	CanceladoPor string `json:"cancelado_por,omitempty"`
	OcurridoEn   string `json:"ocurrido_en"`
}
