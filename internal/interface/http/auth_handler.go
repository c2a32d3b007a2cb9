package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/danisworo/taskhub/internal/application"
	"github.com/danisworo/taskhub/internal/interface/middleware"
	"github.com/danisworo/taskhub/pkg/helpers"
	"github.com/danisworo/taskhub/pkg/response"
	"github.com/danisworo/taskhub/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type signupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,pwd"`
	Name        string `json:"name" binding:"omitempty,max=255"`
	DateOfBirth string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	SignupDate  string `json:"signup_date" binding:"omitempty"`
}

type signinRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,pwd"`
}

type resetInitRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", validation.ToDetails(err))
		return
	}

	in := application.SignupInput{Email: req.Email, Password: req.Password, Name: req.Name}
	if req.DateOfBirth != "" {
		dob, _ := time.Parse("2006-01-02", req.DateOfBirth)
		in.DateOfBirth = &dob
	}
	if req.SignupDate != "" {
		sd, err := time.Parse(time.RFC3339, req.SignupDate)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload",
				map[string]string{"signup_date": "must be an RFC 3339 timestamp"})
			return
		}
		in.SignupDate = &sd
	}

	u, tok, err := h.Svc.Signup(c.Request.Context(), in)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	h.Cookies.SetAccessToken(c, tok.Value, tok.ExpiresAt)
	response.Success(c, http.StatusCreated, gin.H{
		"user":         toUserPayload(u),
		"access_token": tok.Value,
		"token_type":   "bearer",
	}, "signup successful", gin.H{"expires_at": tok.ExpiresAt})
}

// Signin POST /api/auth/signin
func (h *AuthHandler) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", validation.ToDetails(err))
		return
	}

	u, tok, err := h.Svc.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	h.Cookies.SetAccessToken(c, tok.Value, tok.ExpiresAt)
	response.Success(c, http.StatusOK, gin.H{
		"user":         toUserPayload(u),
		"access_token": tok.Value,
		"token_type":   "bearer",
	}, "signin successful", gin.H{"expires_at": tok.ExpiresAt})
}

// Signout POST /api/auth/signout (auth required). Tokens are not revocable;
// this only clears the mirrored cookie.
func (h *AuthHandler) Signout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, gin.H{"signed_out": true}, "signed out", nil)
}

// Me GET /api/auth/me (auth required)
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.writeAuthError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserPayload(u), "profile", nil)
}

// ChangePassword POST /api/auth/change-password (auth required)
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ChangePassword(c.Request.Context(), middleware.UserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		h.writeAuthError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"changed": true}, "password changed", nil)
}

// ResetInit POST /api/auth/reset/init. Responds 200 regardless of whether
// the account exists.
func (h *AuthHandler) ResetInit(c *gin.Context) {
	var req resetInitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResetInit(c.Request.Context(), req.Email); err != nil {
		h.writeAuthError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requested": true},
		"if the account exists, a reset link has been sent", nil)
}

// ResetConfirm POST /api/auth/reset/confirm
func (h *AuthHandler) ResetConfirm(c *gin.Context) {
	var req resetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResetConfirm(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		h.writeAuthError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reset": true}, "password reset", nil)
}

func (h *AuthHandler) writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, application.ErrEmailExists):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "email already registered", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid email or password", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "user not found", nil)
	case errors.Is(err, application.ErrResetTokenInvalid):
		response.Error(c, http.StatusBadRequest, "RESET_TOKEN_INVALID", "reset token invalid or expired", nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("auth request failed")
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
	}
}
