package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/padelgestionado/padel-club-api/internal/model"
)

// PairRepo reads and writes `parejas` and the `inscripciones_parejas`
// assignment table that links pairs to tournaments.
type PairRepo struct{ db *sql.DB }

func NewPairRepo(db *sql.DB) *PairRepo { return &PairRepo{db: db} }

// Create inserts a pair. Players are stored with the lower ID first so
// the unique key rejects the same duo regardless of argument order.
func (r *PairRepo) Create(ctx context.Context, jugador1ID, jugador2ID int) (model.Pair, error) {
	a, b := jugador1ID, jugador2ID
	if b < a {
		a, b = b, a
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO parejas (jugador1_id, jugador2_id) VALUES (?,?)`, a, b)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.Pair{}, ErrPairExists
		}
		return model.Pair{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Pair{}, err
	}
	var p model.Pair
	err = r.db.QueryRowContext(ctx,
		`SELECT id, jugador1_id, jugador2_id, created_at FROM parejas WHERE id = ?`, id).
		Scan(&p.ID, &p.Jugador1ID, &p.Jugador2ID, &p.CreatedAt)
	return p, err
}

// PairDetail carries a pair together with its players' names for the
// admin console listing.
type PairDetail struct {
	ParejaID       int    `json:"pareja_id"`
	Jugador1ID     int    `json:"jugador1_id"`
	Jugador1Nombre string `json:"jugador1_nombre"`
	Jugador2ID     int    `json:"jugador2_id"`
	Jugador2Nombre string `json:"jugador2_nombre"`
}

// List returns every pair joined to both players, oldest first.
func (r *PairRepo) List(ctx context.Context) ([]PairDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, u1.id, u1.nombre, u2.id, u2.nombre
		 FROM parejas p
		 JOIN usuarios u1 ON u1.id = p.jugador1_id
		 JOIN usuarios u2 ON u2.id = p.jugador2_id
		 ORDER BY p.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]PairDetail, 0)
	for rows.Next() {
		var d PairDetail
		if err := rows.Scan(&d.ParejaID, &d.Jugador1ID, &d.Jugador1Nombre,
			&d.Jugador2ID, &d.Jugador2Nombre); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetByID fetches a pair, mapping the missing row to ErrPairNotFound.
func (r *PairRepo) GetByID(ctx context.Context, id int) (model.Pair, error) {
	var p model.Pair
	err := r.db.QueryRowContext(ctx,
		`SELECT id, jugador1_id, jugador2_id, created_at FROM parejas WHERE id = ? LIMIT 1`, id).
		Scan(&p.ID, &p.Jugador1ID, &p.Jugador2ID, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Pair{}, ErrPairNotFound
	}
	return p, err
}

// Assign links a pair to a tournament. The unique key on
// (torneo_id, pareja_id) rejects duplicates.
func (r *PairRepo) Assign(ctx context.Context, torneoID, parejaID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO inscripciones_parejas (torneo_id, pareja_id) VALUES (?,?)`,
		torneoID, parejaID)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrPairAssigned
	}
	return err
}

// ListAssigned returns the IDs of the pairs assigned to a tournament in
// assignment order. This order seeds round one of the bracket.
func (r *PairRepo) ListAssigned(ctx context.Context, torneoID int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT pareja_id FROM inscripciones_parejas WHERE torneo_id = ? ORDER BY id ASC`,
		torneoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
