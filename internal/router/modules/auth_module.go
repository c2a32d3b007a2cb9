package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/danisworo/taskhub/internal/container"
	handlers "github.com/danisworo/taskhub/internal/interface/http"
	"github.com/danisworo/taskhub/internal/interface/middleware"
	"github.com/danisworo/taskhub/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())
	signinLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByIPAndPath())
	resetLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/auth/signin", signinLimiter, m.Handler.Signin)
	rg.POST("/auth/reset/init", resetLimiter, m.Handler.ResetInit)
	rg.POST("/auth/reset/confirm", resetLimiter, m.Handler.ResetConfirm)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/auth/me", m.Handler.Me)
		auth.POST("/auth/signout", m.Handler.Signout)
		auth.POST("/auth/change-password", m.Handler.ChangePassword)
	}
}
