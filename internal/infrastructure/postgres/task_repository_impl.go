package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danisworo/taskhub/internal/domain/entity"
	"github.com/danisworo/taskhub/internal/domain/repository"
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, completed, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, t.Title, nullableString(t.Description), t.Completed, t.UserID)

	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	t := &entity.Task{}
	var desc *string

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, completed, user_id, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`, id)

	if err := row.Scan(&t.ID, &t.Title, &desc, &t.Completed, &t.UserID,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if desc != nil {
		t.Description = *desc
	}
	return t, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]entity.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, completed, user_id, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]entity.Task, 0, limit)
	for rows.Next() {
		var t entity.Task
		var desc *string
		if err := rows.Scan(&t.ID, &t.Title, &desc, &t.Completed, &t.UserID,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if desc != nil {
			t.Description = *desc
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM tasks WHERE user_id = $1
	`, ownerID).Scan(&total)
	return total, err
}

func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, completed = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`, t.Title, nullableString(t.Description), t.Completed, t.ID)

	if err := row.Scan(&t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
