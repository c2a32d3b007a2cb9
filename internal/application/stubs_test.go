package application

import (
	"context"
	"sync"
	"time"

	"github.com/danisworo/taskhub/internal/domain/entity"
	"github.com/danisworo/taskhub/internal/domain/repository"
)

// In-memory repository stubs. They clone on the way in and out so tests
// observe the same value semantics a real database gives.

type stubUserRepo struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]*entity.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*entity.User)}
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (r *stubUserRepo) Create(_ context.Context, u *entity.User) error {
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
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string, forceChange bool) error {
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

type stubTaskRepo struct {
	mu    sync.Mutex
	seq   int64
	tasks map[int64]*entity.Task
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[int64]*entity.Task)}
}

func cloneTask(t *entity.Task) *entity.Task {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func (r *stubTaskRepo) Create(_ context.Context, t *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	t.ID = r.seq
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	r.tasks[t.ID] = cloneTask(t)
	return nil
}

func (r *stubTaskRepo) GetByID(_ context.Context, id int64) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) ListByOwner(_ context.Context, ownerID int64, limit, offset int) ([]entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	owned := make([]entity.Task, 0)
	for id := int64(1); id <= r.seq; id++ {
		if t, ok := r.tasks[id]; ok && t.UserID == ownerID {
			owned = append(owned, *cloneTask(t))
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

func (r *stubTaskRepo) CountByOwner(_ context.Context, ownerID int64) (int64, error) {
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

func (r *stubTaskRepo) Update(_ context.Context, t *entity.Task) error {
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
	r.tasks[t.ID] = cloneTask(t)
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

var (
	_ repository.UserRepository = (*stubUserRepo)(nil)
	_ repository.TaskRepository = (*stubTaskRepo)(nil)
)
