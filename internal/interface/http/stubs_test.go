package handlers_test

import (
	"context"
	"sync"
	"time"

	"github.com/danisworo/taskhub/internal/domain/entity"
	"github.com/danisworo/taskhub/internal/domain/repository"
)

type memUserRepo struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*entity.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.seq++
	u.ID = r.seq
	now := time.Now()
	if u.SignupDate.IsZero() {
		u.SignupDate = now
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	c := *u
	r.users[u.ID] = &c
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string, forceChange bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.ForcePasswordChange = forceChange
	u.UpdatedAt = time.Now()
	return nil
}

type memTaskRepo struct {
	mu    sync.Mutex
	seq   int64
	tasks map[int64]*entity.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[int64]*entity.Task)}
}

func (r *memTaskRepo) Create(_ context.Context, t *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	t.ID = r.seq
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	c := *t
	r.tasks[t.ID] = &c
	return nil
}

func (r *memTaskRepo) GetByID(_ context.Context, id int64) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *t
	return &c, nil
}

func (r *memTaskRepo) ListByOwner(_ context.Context, ownerID int64, limit, offset int) ([]entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	owned := make([]entity.Task, 0)
	for id := int64(1); id <= r.seq; id++ {
		if t, ok := r.tasks[id]; ok && t.UserID == ownerID {
			owned = append(owned, *t)
		}
	}
	if offset >= len(owned) {
		return nil, nil
	}
	owned = owned[offset:]
	if limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, nil
}

func (r *memTaskRepo) CountByOwner(_ context.Context, ownerID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.tasks {
		if t.UserID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *memTaskRepo) Update(_ context.Context, t *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tasks[t.ID]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	if !now.After(stored.UpdatedAt) {
		now = stored.UpdatedAt.Add(time.Nanosecond)
	}
	t.UpdatedAt = now
	t.CreatedAt = stored.CreatedAt
	c := *t
	r.tasks[t.ID] = &c
	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

var (
	_ repository.UserRepository = (*memUserRepo)(nil)
	_ repository.TaskRepository = (*memTaskRepo)(nil)
)
