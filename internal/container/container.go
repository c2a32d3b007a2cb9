package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/danisworo/taskhub/config"
	"github.com/danisworo/taskhub/pkg/helpers"
	"github.com/danisworo/taskhub/pkg/mailer"
)

// app-level container to share constructed components across packages.
// Everything here is set exactly once during bootstrap; handlers and
// services still receive their dependencies explicitly from the router
// wiring.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	jwtManager  *helpers.JWTManager
	mailClient  *mailer.Mailgun
)

func SetConfig(c *config.Config) { cfg = c }

func GetConfig() *config.Config { return cfg }

func SetLogger(l *logrus.Logger) { logger = l }

func GetLogger() *logrus.Logger { return logger }

func SetPGPool(p *pgxpool.Pool) { pgPool = p }

func GetPGPool() *pgxpool.Pool { return pgPool }

func SetRedis(r *redis.Client) { redisClient = r }

func GetRedis() *redis.Client { return redisClient }

func SetJWT(m *helpers.JWTManager) { jwtManager = m }

func GetJWT() *helpers.JWTManager { return jwtManager }

func SetMailer(m *mailer.Mailgun) { mailClient = m }

func GetMailer() *mailer.Mailgun { return mailClient }
