package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/deva-prakash-j/lurniq-api/domain"
	"github.com/deva-prakash-j/lurniq-api/internal/config"
	"github.com/deva-prakash-j/lurniq-api/internal/infrastructure/auth"
	"github.com/deva-prakash-j/lurniq-api/internal/infrastructure/clock"
	"github.com/deva-prakash-j/lurniq-api/internal/infrastructure/database"
	"github.com/deva-prakash-j/lurniq-api/internal/infrastructure/messaging"
	"github.com/deva-prakash-j/lurniq-api/internal/infrastructure/notifications"
	"github.com/deva-prakash-j/lurniq-api/internal/infrastructure/repositories"
	"github.com/deva-prakash-j/lurniq-api/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client

	Clock domain.Clock

	UserRepo  domain.UserRepository
	TokenRepo domain.SingleUseTokenRepository

	PasswordSvc   domain.PasswordService
	TokenSvc      domain.TokenService
	TokenStore    domain.TokenStore
	Mailer        domain.MailerService
	Audit         domain.AuditPublisher
	RequestGate   domain.RateLimiter
	ResetLimiter  domain.RateLimiter
	Resolver      domain.IdentityResolver
	CredentialSvc domain.CredentialService
	PolicySvc     domain.PolicyService

	Casbin  *auth.CasbinService
	Sweeper *services.TokenSweeper
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg, Clock: clock.NewSystemClock()}

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	if err := c.initRedis(); err != nil {
		return nil, err
	}
	c.initRepositories()
	if err := c.initServices(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() error {
	if c.Config.RateLimitStore != "redis" {
		return nil
	}
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.TokenRepo = repositories.NewSingleUseTokenRepository(c.DB)
}

func (c *Container) initServices() error {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
		c.Clock,
	)

	c.TokenStore = services.NewSingleUseTokenService(c.TokenRepo, c.UserRepo, c.Clock, services.TokenStoreConfig{
		VerificationTTL: c.Config.VerificationTTL,
		ResetTTL:        c.Config.ResetTTL,
		SweepGrace:      c.Config.SweepGrace,
	})

	c.Mailer = notifications.NewSMTPMailer(notifications.MailerConfig{
		Host:              c.Config.MailHost,
		Port:              c.Config.MailPort,
		Username:          c.Config.MailUsername,
		Password:          c.Config.MailPassword,
		From:              c.Config.MailFrom,
		FromName:          c.Config.MailFromName,
		ActivationBaseURL: c.Config.ActivationBaseURL,
		FrontendBaseURL:   c.Config.FrontendBaseURL,
	})

	c.Audit = messaging.NewKafkaAuditPublisher(c.Config.KafkaBrokers, c.Config.KafkaTopic)

	var store domain.CounterStore
	if c.RedisClient != nil {
		store = services.NewRedisCounterStore(c.RedisClient)
	} else {
		store = services.NewMemoryCounterStore(c.Clock, 10*c.Config.RateLimitWindow)
	}

	c.RequestGate = services.NewFixedWindowRateLimiter(store, c.Config.RateLimitWindow, authEndpointLimits(c.Config), c.Config.DefaultLimit)
	c.ResetLimiter = services.NewFixedWindowRateLimiter(store, c.Config.ResetUserWindow, nil, c.Config.ResetUserLimit)

	c.Resolver = services.NewIdentityResolver(c.UserRepo)

	c.CredentialSvc = services.NewAuthService(
		c.UserRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.TokenStore,
		c.Mailer,
		c.Audit,
		c.ResetLimiter,
		c.Clock,
		c.Config.AccessTTL,
	)

	c.Sweeper = services.NewTokenSweeper(c.TokenStore, c.Config.SweepInterval)
	return nil
}

func authEndpointLimits(cfg *config.Config) map[string]int {
	return map[string]int{
		"auth.login":    cfg.AuthLimit,
		"auth.register": cfg.AuthLimit,
		"auth.recovery": cfg.AuthLimit,
		"auth.oauth":    cfg.AuthLimit,
	}
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Audit != nil {
		c.Audit.Close()
	}
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
