package repository

import (
	"context"

	"github.com/danisworo/taskhub/internal/domain/entity"
)

// TaskRepository defines the interface for task persistence. GetByID returns
// the task regardless of owner; ownership is the service layer's decision so
// that "not found" and "not owned" stay distinguishable.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, id int64) (*entity.Task, error)
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]entity.Task, error)
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, id int64) error
}
