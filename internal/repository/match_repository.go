package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/padelgestionado/padel-club-api/internal/bracket"
	"github.com/padelgestionado/padel-club-api/internal/model"
)

// MatchRepo owns the `partidos` table and the two state transitions
// that span it and `torneos`: generating the bracket and recording a
// result. Both run in a single transaction so a torneo can never be
// en_curso without its round-one matches, nor finalizado without a
// winner.
type MatchRepo struct{ db *sql.DB }

func NewMatchRepo(db *sql.DB) *MatchRepo { return &MatchRepo{db: db} }

const matchCols = `id, torneo_id, ronda, pareja1_id, pareja2_id, resultado_pareja1, resultado_pareja2, ganador_id`

func scanMatch(row interface{ Scan(...any) error }) (model.Match, error) {
	var m model.Match
	var p2, r1, r2, win sql.NullInt64
	err := row.Scan(&m.ID, &m.TorneoID, &m.Ronda, &m.Pareja1ID, &p2, &r1, &r2, &win)
	if err != nil {
		return model.Match{}, err
	}
	if p2.Valid {
		v := int(p2.Int64)
		m.Pareja2ID = &v
	}
	if r1.Valid {
		v := int(r1.Int64)
		m.ResultadoPareja1 = &v
	}
	if r2.Valid {
		v := int(r2.Int64)
		m.ResultadoPareja2 = &v
	}
	if win.Valid {
		v := int(win.Int64)
		m.GanadorID = &v
	}
	return m, nil
}

// ListByTournament returns a tournament's matches ordered by round and
// creation order within the round.
func (r *MatchRepo) ListByTournament(ctx context.Context, torneoID int) ([]model.Match, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+matchCols+` FROM partidos WHERE torneo_id = ? ORDER BY ronda ASC, id ASC`,
		torneoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// insertRound writes the pairings of one round inside tx. Byes resolve
// immediately: the lone pair is recorded as the match winner.
func insertRound(ctx context.Context, tx *sql.Tx, torneoID, ronda int, pairings []bracket.Pairing) error {
	for _, p := range pairings {
		if p.B == nil {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO partidos (torneo_id, ronda, pareja1_id, pareja2_id, ganador_id) VALUES (?,?,?, NULL, ?)`,
				torneoID, ronda, p.A, p.A); err != nil {
				return err
			}
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO partidos (torneo_id, ronda, pareja1_id, pareja2_id) VALUES (?,?,?,?)`,
			torneoID, ronda, p.A, *p.B); err != nil {
			return err
		}
	}
	return nil
}

// StartTournament generates round one from the assigned pairs and moves
// the torneo to en_curso. The torneo row is locked for the duration so
// two concurrent starts cannot both generate a bracket.
func (r *MatchRepo) StartTournament(ctx context.Context, torneoID int) ([]model.Match, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var estado string
	err = tx.QueryRowContext(ctx,
		`SELECT estado FROM torneos WHERE id = ? FOR UPDATE`, torneoID).Scan(&estado)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTournamentNotFound
	}
	if err != nil {
		return nil, err
	}
	if estado != model.TournamentOpen {
		return nil, ErrTournamentState
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT pareja_id FROM inscripciones_parejas WHERE torneo_id = ? ORDER BY id ASC`, torneoID)
	if err != nil {
		return nil, err
	}
	var pairs []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		pairs = append(pairs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(pairs) < 2 {
		return nil, ErrNotEnoughPairs
	}

	if err := insertRound(ctx, tx, torneoID, 1, bracket.Round(pairs)); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE torneos SET estado = 'en_curso' WHERE id = ?`, torneoID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return r.ListByTournament(ctx, torneoID)
}

// RecordResult stores a match result and determines the winner from
// the higher score. When the last pending match of a round resolves,
// the next round is generated from the winners in match order; a
// single remaining winner closes the tournament.
func (r *MatchRepo) RecordResult(ctx context.Context, partidoID, resultado1, resultado2 int) (model.Match, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Match{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	m, err := scanMatch(tx.QueryRowContext(ctx,
		`SELECT `+matchCols+` FROM partidos WHERE id = ? FOR UPDATE`, partidoID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Match{}, ErrMatchNotFound
	}
	if err != nil {
		return model.Match{}, err
	}
	if m.GanadorID != nil {
		return model.Match{}, ErrMatchResolved
	}

	ganador := m.Pareja1ID
	if m.Pareja2ID != nil && resultado2 > resultado1 {
		ganador = *m.Pareja2ID
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE partidos SET resultado_pareja1 = ?, resultado_pareja2 = ?, ganador_id = ? WHERE id = ?`,
		resultado1, resultado2, ganador, partidoID); err != nil {
		return model.Match{}, err
	}

	// Round completion check: winners in match order, NULL means pending.
	rows, err := tx.QueryContext(ctx,
		`SELECT id, ganador_id FROM partidos WHERE torneo_id = ? AND ronda = ? ORDER BY id ASC`,
		m.TorneoID, m.Ronda)
	if err != nil {
		return model.Match{}, err
	}
	var winners []int
	complete := true
	for rows.Next() {
		var id int
		var win sql.NullInt64
		if err := rows.Scan(&id, &win); err != nil {
			rows.Close()
			return model.Match{}, err
		}
		if id == partidoID {
			win = sql.NullInt64{Int64: int64(ganador), Valid: true}
		}
		if !win.Valid {
			complete = false
			continue
		}
		winners = append(winners, int(win.Int64))
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return model.Match{}, err
	}

	if complete {
		if len(winners) == 1 {
			if _, err := tx.ExecContext(ctx,
				`UPDATE torneos SET estado = 'finalizado', ganador_pareja_id = ? WHERE id = ?`,
				winners[0], m.TorneoID); err != nil {
				return model.Match{}, err
			}
		} else {
			if err := insertRound(ctx, tx, m.TorneoID, m.Ronda+1, bracket.Round(winners)); err != nil {
				return model.Match{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Match{}, err
	}
	committed = true
	return r.GetByID(ctx, partidoID)
}

// GetByID fetches a match, mapping the missing row to ErrMatchNotFound.
func (r *MatchRepo) GetByID(ctx context.Context, id int) (model.Match, error) {
	m, err := scanMatch(r.db.QueryRowContext(ctx,
		`SELECT `+matchCols+` FROM partidos WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Match{}, ErrMatchNotFound
	}
	return m, err
}
