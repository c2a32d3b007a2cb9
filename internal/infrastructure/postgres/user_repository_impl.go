package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danisworo/taskhub/internal/domain/entity"
	"github.com/danisworo/taskhub/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, date_of_birth, signup_date)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()))
		RETURNING id, signup_date, force_password_change, created_at, updated_at
	`, u.Email, u.PasswordHash, u.Name, u.DateOfBirth, nullableTime(u.SignupDate))

	if err := row.Scan(&u.ID, &u.SignupDate, &u.ForcePasswordChange, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, date_of_birth, signup_date,
		       force_password_change, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, date_of_birth, signup_date,
		       force_password_change, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string, forceChange bool) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, force_password_change = $2, updated_at = now()
		WHERE id = $3
	`, passwordHash, forceChange, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) scanOne(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var name *string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &name, &u.DateOfBirth,
		&u.SignupDate, &u.ForcePasswordChange, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if name != nil {
		u.Name = *name
	}
	return u, nil
}

// nullableTime lets the INSERT fall back to the column default when the
// caller did not supply a signup date.
func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

var _ repository.UserRepository = (*UserRepository)(nil)
