package router

import (
	"github.com/danisworo/taskhub/internal/application"
	"github.com/danisworo/taskhub/internal/container"
	pginfra "github.com/danisworo/taskhub/internal/infrastructure/postgres"
	handlers "github.com/danisworo/taskhub/internal/interface/http"
	"github.com/danisworo/taskhub/internal/router/modules"
)

// InitModules wires repositories, services, and handlers from the container
// singletons and registers every feature module. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	taskRepo := pginfra.NewTaskRepository(pool)

	authSvc := application.NewAuthService(
		userRepo,
		container.GetJWT(),
		container.GetRedis(),
		container.GetMailer(),
		logger,
		cfg.ResetTokenTTL,
		cfg.ResetPasswordURL,
	)
	taskSvc := application.NewTaskService(taskRepo, logger)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	taskHandler := handlers.NewTaskHandler(taskSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewTaskModule(taskHandler, container.GetJWT()))
	if cfg.Debug {
		r.Add(modules.NewDebugModule())
	}
}
