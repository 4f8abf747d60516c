package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/oksasatya/recipe-api/internal/domain/entity"
	"github.com/oksasatya/recipe-api/internal/domain/repository"
)

// DBTX is the subset of *sql.DB and *sql.Tx the repository needs.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	PingContext(ctx context.Context) error
	Close() error
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	birthday      TEXT,
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL
)`

const emailIndex = `CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`

const selectUser = `SELECT id, email, password_hash, name, birthday, created_at, updated_at FROM users`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Initialize(ctx context.Context) error {
	for _, stmt := range []string{schema, emailIndex} {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("initialize users schema: %w", err)
		}
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, selectUser+` WHERE email = ?`, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, selectUser+` WHERE id = ?`, id)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg string) (*entity.User, error) {
	var (
		u                    entity.User
		birthday             sql.NullString
		createdAt, updatedAt string
	)
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &birthday, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if birthday.Valid {
		u.Birthday = &birthday.String
	}
	if u.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at of user %s: %w", u.ID, err)
	}
	if u.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at of user %s: %w", u.ID, err)
	}
	return &u, nil
}

func (r *UserRepository) Insert(ctx context.Context, u *entity.User) error {
	var birthday sql.NullString
	if u.Birthday != nil {
		birthday = sql.NullString{String: *u.Birthday, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, name, birthday, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Email, u.PasswordHash, u.Name, birthday,
		u.CreatedAt.UTC().Format(entity.ISOLayout), u.UpdatedAt.UTC().Format(entity.ISOLayout))
	if err != nil {
		if isEmailUniqueViolation(err) {
			return repository.ErrEmailTaken
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *UserRepository) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }

func (r *UserRepository) Close() error { return r.db.Close() }

func isEmailUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) || se.Code() != sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return false
	}
	return strings.Contains(se.Error(), "users.email")
}

var _ repository.UserRepository = (*UserRepository)(nil)
