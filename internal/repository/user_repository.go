package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/padelgestionado/padel-club-api/internal/model"
	"github.com/padelgestionado/padel-club-api/internal/utils"
)

// UserRepo reads and writes the `usuarios` table.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

var ErrEmailExists = errors.New("email ya registrado")

// GetByID fetches a user by id. ErrUserNotFound is returned when no row
// exists so callers never have to compare against sql.ErrNoRows.
func (r *UserRepo) GetByID(ctx context.Context, id int) (model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, nombre, email, password_hash, admin, created_at FROM usuarios WHERE id = ? LIMIT 1",
		id).Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.Admin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, nombre, email, password_hash, admin, created_at FROM usuarios WHERE email = ? LIMIT 1",
		email).Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.Admin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// Create inserts a user with a bcrypt-hashed password and returns its ID.
// MySQL error 1062 on the unique email index maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, nombre, email, password string, admin bool, cost int) (int, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO usuarios (nombre, email, password_hash, admin) VALUES (?,?,?,?)",
		nombre, email, hash, admin)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// EnsureAdmin creates the bootstrap administrator account when no user
// with the given email exists yet. It is called once at startup so a
// fresh deployment always has a working admin login for the console.
func (r *UserRepo) EnsureAdmin(ctx context.Context, nombre, email, password string, cost int) (int, error) {
	u, err := r.GetByEmail(ctx, email)
	if err == nil {
		return u.ID, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return 0, err
	}
	id, err := r.Create(ctx, nombre, email, password, true, cost)
	if errors.Is(err, ErrEmailExists) {
		// raced with a concurrent boot; the account is there
		u, err2 := r.GetByEmail(ctx, email)
		if err2 != nil {
			return 0, err2
		}
		return u.ID, nil
	}
	return id, err
}
