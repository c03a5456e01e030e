package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/padelgestionado/padel-club-api/internal/model"
)

// RegistrationRepo reads and writes `inscripciones_torneos`. The
// (usuario_id, torneo_id) uniqueness for active rows is checked before
// the insert and backstopped by the table's unique key over a generated
// column, mirroring how reservas guards its grid cell.
type RegistrationRepo struct{ db *sql.DB }

func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

// Create inserts an active registration and returns it. The role and
// existence checks on user and tournament belong to the handler; this
// method only guards duplicates.
func (r *RegistrationRepo) Create(ctx context.Context, usuarioID, torneoID int) (model.Registration, error) {
	var existing int
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM inscripciones_torneos
		 WHERE usuario_id = ? AND torneo_id = ? AND estado = 'activa' LIMIT 1`,
		usuarioID, torneoID).Scan(&existing)
	if err == nil {
		return model.Registration{}, ErrAlreadyRegistered
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Registration{}, err
	}

	now := time.Now().UTC().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO inscripciones_torneos (usuario_id, torneo_id, fecha_inscripcion, estado) VALUES (?,?,?, 'activa')`,
		usuarioID, torneoID, now)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.Registration{}, ErrAlreadyRegistered
		}
		return model.Registration{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Registration{}, err
	}
	return model.Registration{
		ID:               int(id),
		UsuarioID:        usuarioID,
		TorneoID:         torneoID,
		FechaInscripcion: now,
		Estado:           model.RegistrationActive,
	}, nil
}

// RegistrationDetail joins a registration to its tournament's public
// fields for the mis_inscripciones listing.
type RegistrationDetail struct {
	InscripcionID     int    `json:"inscripcion_id"`
	TorneoID          int    `json:"torneo_id"`
	FechaInscripcion  string `json:"fecha_inscripcion"`
	Estado            string `json:"estado"`
	TorneoNombre      string `json:"torneo_nombre"`
	TorneoDescripcion string `json:"torneo_descripcion"`
	TorneoFecha       string `json:"torneo_fecha"`
}

// ListByUser returns the user's registrations joined to their
// tournaments, newest registration first. A user with none gets an
// empty slice, not an error.
func (r *RegistrationRepo) ListByUser(ctx context.Context, usuarioID int) ([]RegistrationDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT it.id, it.torneo_id,
		        DATE_FORMAT(it.fecha_inscripcion, '%Y-%m-%d %H:%i:%s'),
		        it.estado,
		        t.nombre, t.descripcion, DATE_FORMAT(t.fecha, '%Y-%m-%d')
		 FROM inscripciones_torneos it
		 JOIN torneos t ON it.torneo_id = t.id
		 WHERE it.usuario_id = ?
		 ORDER BY it.fecha_inscripcion DESC`, usuarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]RegistrationDetail, 0)
	for rows.Next() {
		var d RegistrationDetail
		if err := rows.Scan(&d.InscripcionID, &d.TorneoID, &d.FechaInscripcion,
			&d.Estado, &d.TorneoNombre, &d.TorneoDescripcion, &d.TorneoFecha); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Withdraw marks the registration cancelled. Only the owner may
// withdraw; already-cancelled rows are rejected rather than silently
// accepted, matching the booking cancellation semantics.
func (r *RegistrationRepo) Withdraw(ctx context.Context, inscripcionID, usuarioID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var ownerID int
	var estado string
	err = tx.QueryRowContext(ctx,
		`SELECT usuario_id, estado FROM inscripciones_torneos WHERE id = ? FOR UPDATE`,
		inscripcionID).Scan(&ownerID, &estado)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRegistrationNotFound
	}
	if err != nil {
		return err
	}
	if ownerID != usuarioID {
		return ErrForbidden
	}
	if estado == model.RegistrationCancelled {
		return ErrRegistrationCancelled
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE inscripciones_torneos SET estado = 'cancelada' WHERE id = ?`, inscripcionID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
