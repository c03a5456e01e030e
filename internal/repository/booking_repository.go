package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/padelgestionado/padel-club-api/internal/model"
)

// BookingRepo reads and writes the `reservas` table and its audit log.
// The write paths encapsulate their transactions so a caller can never
// end up with a status change that is missing its log entry, or with
// two active bookings on the same court/date/hour cell.
type BookingRepo struct{ db *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingCols = `id, usuario_id, cancha_id, DATE_FORMAT(fecha, '%Y-%m-%d'), hora, estado, fecha_cancelacion, created_at`

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var b model.Booking
	var cancelled sql.NullTime
	err := row.Scan(&b.ID, &b.UsuarioID, &b.CanchaID, &b.Fecha, &b.Hora, &b.Estado, &cancelled, &b.CreatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	if cancelled.Valid {
		t := cancelled.Time
		b.FechaCancelacion = &t
	}
	return b, nil
}

// ListActiveForDate returns every non-cancelled booking for the given
// calendar day, ordered by court then hour. The availability resolver
// scans this list against the full catalog grid.
func (r *BookingRepo) ListActiveForDate(ctx context.Context, fecha string) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingCols+`
		 FROM reservas
		 WHERE fecha = ? AND estado != 'cancelada'
		 ORDER BY cancha_id, hora`, fecha)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByID fetches a booking by id, mapping the missing row to
// ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id int) (model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM reservas WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrBookingNotFound
	}
	return b, err
}

// Create inserts an active booking for the (court, date, hour) cell.
// The availability check and the insert run in one transaction: the
// SELECT ... FOR UPDATE serializes concurrent creates on the same cell,
// and the unique key over the cell's generated column backstops any
// path that skips the check. Both failure modes map to ErrSlotTaken.
func (r *BookingRepo) Create(ctx context.Context, usuarioID, canchaID int, fecha, hora string) (model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var existing int
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM reservas
		 WHERE cancha_id = ? AND fecha = ? AND hora = ? AND estado = 'activa'
		 LIMIT 1 FOR UPDATE`,
		canchaID, fecha, hora).Scan(&existing)
	switch {
	case err == nil:
		return model.Booking{}, ErrSlotTaken
	case !errors.Is(err, sql.ErrNoRows):
		return model.Booking{}, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO reservas (usuario_id, cancha_id, fecha, hora, estado) VALUES (?,?,?,?, 'activa')`,
		usuarioID, canchaID, fecha, hora)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.Booking{}, ErrSlotTaken
		}
		return model.Booking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Booking{}, err
	}
	b, err := scanBooking(tx.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM reservas WHERE id = ?`, id))
	if err != nil {
		return model.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	committed = true
	return b, nil
}

// Cancel moves a booking from activa to cancelada and writes the audit
// row in the same transaction. The current estado is re-read under FOR
// UPDATE so a concurrent cancellation of the same booking fails with
// ErrAlreadyCancelled instead of producing a duplicate log entry.
// Authorization is the caller's responsibility; motivo records who
// cancelled and why for the audit trail.
func (r *BookingRepo) Cancel(ctx context.Context, reservaID, usuarioID int, motivo string) (time.Time, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return time.Time{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var estado string
	err = tx.QueryRowContext(ctx,
		`SELECT estado FROM reservas WHERE id = ? FOR UPDATE`, reservaID).Scan(&estado)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrBookingNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	if estado == model.BookingCancelled {
		return time.Time{}, ErrAlreadyCancelled
	}

	now := time.Now().UTC().Truncate(time.Second)
	if _, err := tx.ExecContext(ctx,
		`UPDATE reservas SET estado = 'cancelada', fecha_cancelacion = ? WHERE id = ?`,
		now, reservaID); err != nil {
		return time.Time{}, err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO log_cancelaciones (reserva_id, usuario_id, motivo, fecha_cancelacion) VALUES (?,?,?,?)`,
		reservaID, usuarioID, motivo, now); err != nil {
		return time.Time{}, err
	}
	if err := tx.Commit(); err != nil {
		return time.Time{}, err
	}
	committed = true
	return now, nil
}

// ListByUser returns all of a user's bookings, newest first. Cancelled
// bookings are included so the client can show the full history.
func (r *BookingRepo) ListByUser(ctx context.Context, usuarioID int) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingCols+`
		 FROM reservas
		 WHERE usuario_id = ?
		 ORDER BY fecha DESC, hora DESC`, usuarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
