package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-api/internal/domain/entity"
	"github.com/oksasatya/recipe-api/internal/domain/repository"
)

const (
	uniqueViolation = "23505"
	emailConstraint = "users_email_key"
)

type UserRepository struct {
	pool   *pgxpool.Pool
	dsn    string
	logger *logrus.Logger
}

// NewUserRepository wraps pool. dsn is used by Initialize to run migrations.
func NewUserRepository(pool *pgxpool.Pool, dsn string, logger *logrus.Logger) *UserRepository {
	return &UserRepository{pool: pool, dsn: dsn, logger: logger}
}

func (r *UserRepository) Initialize(ctx context.Context) error {
	if err := RunMigrations(r.dsn, r.logger); err != nil {
		return fmt.Errorf("migrate users schema: %w", err)
	}
	return nil
}

func (r *UserRepository) Insert(ctx context.Context, u *entity.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, birthday, created_at, updated_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7)
	`, u.ID, u.Email, u.PasswordHash, u.Name, u.Birthday, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isEmailUniqueViolation(err) {
			return repository.ErrEmailTaken
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, `
		SELECT id::text, email, password_hash, name, birthday, created_at, updated_at
		FROM users
		WHERE id = $1::uuid
	`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `
		SELECT id::text, email, password_hash, name, birthday, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
}

func (r *UserRepository) findOne(ctx context.Context, query, arg string) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Birthday,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func (r *UserRepository) Ping(ctx context.Context) error { return r.pool.Ping(ctx) }

func (r *UserRepository) Close() error {
	r.pool.Close()
	return nil
}

func isEmailUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == emailConstraint
}

var _ repository.UserRepository = (*UserRepository)(nil)
