package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type TokenConfig struct {
	VerificationTTL string `yaml:"verification_ttl"`
	ResetTTL        string `yaml:"reset_ttl"`
	SweepInterval   string `yaml:"sweep_interval"`
	SweepGrace      string `yaml:"sweep_grace"`
}

type RateLimitConfig struct {
	Store            string `yaml:"store"` // "memory" or "redis"
	Window           string `yaml:"window"`
	AuthLimit        int    `yaml:"auth_limit"`
	DefaultLimit     int    `yaml:"default_limit"`
	ResetUserLimit   int    `yaml:"reset_user_limit"`
	ResetUserWindow  string `yaml:"reset_user_window"`
}

type MailConfig struct {
	Host              string `yaml:"host"`
	Port              int    `yaml:"port"`
	Username          string `yaml:"username"`
	Password          string `yaml:"password"`
	From              string `yaml:"from"`
	FromName          string `yaml:"from_name"`
	ActivationBaseURL string `yaml:"activation_base_url"`
	FrontendBaseURL   string `yaml:"frontend_base_url"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	Tokens    TokenConfig     `yaml:"tokens"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Mail      MailConfig      `yaml:"mail"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Casbin    CasbinConfig    `yaml:"casbin"`
}

// Config is the fully parsed runtime configuration
type Config struct {
	Port    string
	GinMode string

	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret  string
	JWTIssuer  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	VerificationTTL time.Duration
	ResetTTL        time.Duration
	SweepInterval   time.Duration
	SweepGrace      time.Duration

	RateLimitStore  string
	RateLimitWindow time.Duration
	AuthLimit       int
	DefaultLimit    int
	ResetUserLimit  int
	ResetUserWindow time.Duration

	MailHost          string
	MailPort          int
	MailUsername      string
	MailPassword      string
	MailFrom          string
	MailFromName      string
	ActivationBaseURL string
	FrontendBaseURL   string

	KafkaBrokers []string
	KafkaTopic   string

	CasbinModelPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml, applying environment overrides for secrets
func Load() (*Config, error) {
	return LoadFile(env("CONFIG_PATH", "config/config.yml"))
}

// LoadFile reads and parses the given config file
func LoadFile(path string) (*Config, error) {
	file, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := parseDuration(file.JWT.AccessTTL, 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}
	refTTL, err := parseDuration(file.JWT.RefreshTTL, 7*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}
	verTTL, err := parseDuration(file.Tokens.VerificationTTL, 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid verification TTL: %w", err)
	}
	rstTTL, err := parseDuration(file.Tokens.ResetTTL, time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid reset TTL: %w", err)
	}
	sweepEvery, err := parseDuration(file.Tokens.SweepInterval, time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}
	sweepGrace, err := parseDuration(file.Tokens.SweepGrace, time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid sweep grace: %w", err)
	}
	rlWindow, err := parseDuration(file.RateLimit.Window, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit window: %w", err)
	}
	resetWindow, err := parseDuration(file.RateLimit.ResetUserWindow, time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid reset user window: %w", err)
	}

	cfg := &Config{
		Port:    fmt.Sprintf("%d", file.App.Port),
		GinMode: file.App.GinMode,

		DSN: env("DATABASE_DSN", file.Database.DSN),

		RedisAddr:     env("REDIS_ADDR", file.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", file.Redis.Password),
		RedisDB:       file.Redis.DB,

		JWTSecret:  env("JWT_SECRET", file.JWT.Secret),
		JWTIssuer:  file.JWT.Issuer,
		AccessTTL:  accTTL,
		RefreshTTL: refTTL,

		VerificationTTL: verTTL,
		ResetTTL:        rstTTL,
		SweepInterval:   sweepEvery,
		SweepGrace:      sweepGrace,

		RateLimitStore:  file.RateLimit.Store,
		RateLimitWindow: rlWindow,
		AuthLimit:       file.RateLimit.AuthLimit,
		DefaultLimit:    file.RateLimit.DefaultLimit,
		ResetUserLimit:  file.RateLimit.ResetUserLimit,
		ResetUserWindow: resetWindow,

		MailHost:          env("MAIL_HOST", file.Mail.Host),
		MailPort:          file.Mail.Port,
		MailUsername:      env("MAIL_USERNAME", file.Mail.Username),
		MailPassword:      env("MAIL_PASSWORD", file.Mail.Password),
		MailFrom:          file.Mail.From,
		MailFromName:      file.Mail.FromName,
		ActivationBaseURL: file.Mail.ActivationBaseURL,
		FrontendBaseURL:   file.Mail.FrontendBaseURL,

		KafkaBrokers: file.Kafka.Brokers,
		KafkaTopic:   file.Kafka.Topic,

		CasbinModelPath: file.Casbin.ModelPath,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if cfg.AuthLimit <= 0 {
		cfg.AuthLimit = 5
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 60
	}
	if cfg.ResetUserLimit <= 0 {
		cfg.ResetUserLimit = 3
	}
	if cfg.RateLimitStore == "" {
		cfg.RateLimitStore = "memory"
	}
	if file.App.Port == 0 {
		cfg.Port = "8080"
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}
