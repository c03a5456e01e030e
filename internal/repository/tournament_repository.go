package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/padelgestionado/padel-club-api/internal/model"
)

// TournamentRepo reads and writes the `torneos` table. Bracket
// generation and result entry live in MatchRepo because they span
// torneos and partidos in one transaction.
type TournamentRepo struct{ db *sql.DB }

func NewTournamentRepo(db *sql.DB) *TournamentRepo { return &TournamentRepo{db: db} }

const tournamentCols = `id, nombre, descripcion, DATE_FORMAT(fecha, '%Y-%m-%d'), estado, ganador_pareja_id, created_at`

func scanTournament(row interface{ Scan(...any) error }) (model.Tournament, error) {
	var t model.Tournament
	var winner sql.NullInt64
	err := row.Scan(&t.ID, &t.Nombre, &t.Descripcion, &t.Fecha, &t.Estado, &winner, &t.CreatedAt)
	if err != nil {
		return model.Tournament{}, err
	}
	if winner.Valid {
		w := int(winner.Int64)
		t.GanadorParejaID = &w
	}
	return t, nil
}

// GetByID fetches a tournament, mapping the missing row to
// ErrTournamentNotFound.
func (r *TournamentRepo) GetByID(ctx context.Context, id int) (model.Tournament, error) {
	t, err := scanTournament(r.db.QueryRowContext(ctx,
		`SELECT `+tournamentCols+` FROM torneos WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Tournament{}, ErrTournamentNotFound
	}
	return t, err
}

// List returns every tournament, soonest date first.
func (r *TournamentRepo) List(ctx context.Context) ([]model.Tournament, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tournamentCols+` FROM torneos ORDER BY fecha ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Tournament, 0)
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Create inserts a tournament open for registration and returns it.
func (r *TournamentRepo) Create(ctx context.Context, nombre, descripcion, fecha string) (model.Tournament, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO torneos (nombre, descripcion, fecha, estado) VALUES (?,?,?, 'abierto')`,
		nombre, descripcion, fecha)
	if err != nil {
		return model.Tournament{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Tournament{}, err
	}
	return r.GetByID(ctx, int(id))
}
