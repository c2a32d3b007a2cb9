package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/danisworo/taskhub/internal/domain/entity"
	repo "github.com/danisworo/taskhub/internal/domain/repository"
)

const (
	maxTitleLen       = 255
	maxDescriptionLen = 1000

	defaultPageSize = 20
	maxPageSize     = 100
)

// TaskService implements owner-scoped task CRUD. Every read and write first
// resolves the row, then checks ownership, so "absent" and "owned by
// someone else" surface as different failures.
type TaskService struct {
	Repo   repo.TaskRepository
	Logger *logrus.Logger
}

func NewTaskService(r repo.TaskRepository, logger *logrus.Logger) *TaskService {
	return &TaskService{Repo: r, Logger: logger}
}

// TaskPage is one page of an owner's tasks plus the owner's total count.
type TaskPage struct {
	Tasks []entity.Task
	Total int64
}

func (s *TaskService) Create(ctx context.Context, ownerID int64, title, description string) (*entity.Task, error) {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if len(description) > maxDescriptionLen {
		return nil, fmt.Errorf("%w: description exceeds %d characters", ErrValidation, maxDescriptionLen)
	}

	t := &entity.Task{
		Title:       title,
		Description: description,
		Completed:   false,
		UserID:      ownerID,
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) List(ctx context.Context, ownerID int64, limit, offset int) (*TaskPage, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	tasks, err := s.Repo.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.Repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &TaskPage{Tasks: tasks, Total: total}, nil
}

func (s *TaskService) GetByID(ctx context.Context, taskID, ownerID int64) (*entity.Task, error) {
	return s.owned(ctx, taskID, ownerID)
}

// Update applies partial semantics: nil patch fields are left unchanged.
// The updated-at timestamp refreshes even for an empty patch.
func (s *TaskService) Update(ctx context.Context, taskID, ownerID int64, patch entity.TaskPatch) (*entity.Task, error) {
	t, err := s.owned(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
		t.Title = title
	}
	if patch.Description != nil {
		if len(*patch.Description) > maxDescriptionLen {
			return nil, fmt.Errorf("%w: description exceeds %d characters", ErrValidation, maxDescriptionLen)
		}
		t.Description = *patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}

	if err := s.Repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, taskID, ownerID int64) error {
	if _, err := s.owned(ctx, taskID, ownerID); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, taskID)
}

// ToggleCompletion flips the completed flag. Toggling twice restores the
// original value.
func (s *TaskService) ToggleCompletion(ctx context.Context, taskID, ownerID int64) (*entity.Task, error) {
	t, err := s.owned(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}
	t.Completed = !t.Completed
	if err := s.Repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) owned(ctx context.Context, taskID, ownerID int64) (*entity.Task, error) {
	t, err := s.Repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if t.UserID != ownerID {
		if s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{"task_id": taskID, "owner_id": t.UserID, "caller_id": ownerID}).
				Warn("cross-owner task access denied")
		}
		return nil, ErrTaskForbidden
	}
	return t, nil
}

func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(title) > maxTitleLen {
		return fmt.Errorf("%w: title exceeds %d characters", ErrValidation, maxTitleLen)
	}
	return nil
}
