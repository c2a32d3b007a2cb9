package handlers

import (
	"time"

	"github.com/danisworo/taskhub/internal/domain/entity"
)

// Wire representations. Field names follow the public API contract, not the
// entity structs.

type userPayload struct {
	ID                  int64     `json:"id"`
	Email               string    `json:"email"`
	Name                string    `json:"name,omitempty"`
	DateOfBirth         string    `json:"date_of_birth,omitempty"`
	SignupDate          time.Time `json:"signup_date"`
	ForcePasswordChange bool      `json:"force_password_change"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func toUserPayload(u *entity.User) userPayload {
	p := userPayload{
		ID:                  u.ID,
		Email:               u.Email,
		Name:                u.Name,
		SignupDate:          u.SignupDate,
		ForcePasswordChange: u.ForcePasswordChange,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
	if u.DateOfBirth != nil {
		p.DateOfBirth = u.DateOfBirth.Format("2006-01-02")
	}
	return p
}

type taskPayload struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTaskPayload(t *entity.Task) taskPayload {
	return taskPayload{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskPayloads(tasks []entity.Task) []taskPayload {
	out := make([]taskPayload, 0, len(tasks))
	for i := range tasks {
		out = append(out, toTaskPayload(&tasks[i]))
	}
	return out
}
