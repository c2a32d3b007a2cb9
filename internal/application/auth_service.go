package application

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/danisworo/taskhub/internal/domain/entity"
	repo "github.com/danisworo/taskhub/internal/domain/repository"
	"github.com/danisworo/taskhub/pkg/helpers"
	"github.com/danisworo/taskhub/pkg/mailer"
)

// AuthService issues and validates credentials. Redis and Mail are optional;
// nil disables the session mirror and the reset email respectively.
type AuthService struct {
	Repo          repo.UserRepository
	JWT           *helpers.JWTManager
	Redis         *redis.Client
	Mail          *mailer.Mailgun
	Logger        *logrus.Logger
	ResetTokenTTL time.Duration
	ResetURL      string
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, mail *mailer.Mailgun, logger *logrus.Logger, resetTTL time.Duration, resetURL string) *AuthService {
	return &AuthService{
		Repo:          r,
		JWT:           jwt,
		Redis:         rdb,
		Mail:          mail,
		Logger:        logger,
		ResetTokenTTL: resetTTL,
		ResetURL:      resetURL,
	}
}

type SignupInput struct {
	Email       string
	Password    string
	Name        string
	DateOfBirth *time.Time
	SignupDate  *time.Time
}

// Token bundles a signed credential with its expiry instant.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("user:session:%d", userID)
}

func resetKey(token string) string {
	return "pwd:reset:token:" + token
}

// Signup creates an account and issues a token. A client-supplied signup
// date in the future is rejected; absent, the storage default (now) applies.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*entity.User, Token, error) {
	if in.SignupDate != nil && in.SignupDate.After(time.Now()) {
		return nil, Token{}, fmt.Errorf("%w: signup_date cannot be in the future", ErrValidation)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, Token{}, err
	}

	u := &entity.User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		DateOfBirth:  in.DateOfBirth,
	}
	if in.SignupDate != nil {
		u.SignupDate = *in.SignupDate
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, Token{}, ErrEmailExists
		}
		return nil, Token{}, err
	}

	tok, err := s.issueToken(ctx, u)
	if err != nil {
		return nil, Token{}, err
	}
	return u, tok, nil
}

// Signin authenticates by email and password. Both failure modes collapse
// into ErrInvalidCredentials, and the unknown-email path burns a bcrypt
// comparison so the two are not distinguishable by timing either.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*entity.User, Token, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			helpers.BurnPasswordCheck(password)
			return nil, Token{}, ErrInvalidCredentials
		}
		return nil, Token{}, err
	}
	if !helpers.CheckPassword(u.PasswordHash, password) {
		return nil, Token{}, ErrInvalidCredentials
	}

	tok, err := s.issueToken(ctx, u)
	if err != nil {
		return nil, Token{}, err
	}
	return u, tok, nil
}

// Me returns the profile for an authenticated user id.
func (s *AuthService) Me(ctx context.Context, userID int64) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ChangePassword verifies the current password before storing a new hash.
// A successful change clears the force-password-change flag.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, current, newPassword string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !helpers.CheckPassword(u.PasswordHash, current) {
		return ErrInvalidCredentials
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, userID, hash, false)
}

// ResetInit mints an opaque reset token for the account, stores it in Redis
// with a TTL, and delivers the link by email when a mailer is configured.
// The caller gets the same nil result whether or not the email exists.
func (s *AuthService) ResetInit(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}
	if s.Redis == nil {
		return nil
	}

	tok, err := randomToken(32)
	if err != nil {
		return err
	}
	if err := s.Redis.Set(ctx, resetKey(tok), u.ID, s.ResetTokenTTL).Err(); err != nil {
		return err
	}

	link := s.ResetURL + "?token=" + tok
	if s.Mail.Enabled() {
		if err := s.Mail.Send(ctx, u.Email, "Reset your TaskHub password",
			"Use this link to reset your password: "+link); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("reset email failed")
		}
	} else if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "link": link}).Info("password reset link issued")
	}
	return nil
}

// ResetConfirm consumes a reset token and stores the new password hash.
func (s *AuthService) ResetConfirm(ctx context.Context, token, newPassword string) error {
	if s.Redis == nil {
		return ErrResetTokenInvalid
	}
	userID, err := s.Redis.Get(ctx, resetKey(token)).Int64()
	if err != nil {
		return ErrResetTokenInvalid
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, userID, hash, false); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}
	// one-shot token
	s.Redis.Del(ctx, resetKey(token))
	return nil
}

func (s *AuthService) issueToken(ctx context.Context, u *entity.User) (Token, error) {
	value, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("token generation failed")
		}
		return Token{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":   u.ID,
			"email":     u.Email,
			"signed_in": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, time.Until(exp))
		if _, err := pipe.Exec(ctx); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return Token{Value: value, ExpiresAt: exp}, nil
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
