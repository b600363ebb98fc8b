package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config is built once at startup and passed to every constructor.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	Mail     MailConfig     `koanf:"mail"`
	SMS      SMSConfig      `koanf:"sms"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes"`
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

const (
	DatabasePostgres = "postgres"
	DatabaseSupabase = "supa"
	DatabaseMongo    = "mongo"
	DatabaseMemory   = "memory"
)

type DatabaseConfig struct {
	Type           string        `koanf:"type"`
	DSN            string        `koanf:"dsn"`
	Host           string        `koanf:"host"`
	Port           int           `koanf:"port"`
	User           string        `koanf:"user"`
	Password       string        `koanf:"password"`
	Name           string        `koanf:"name"`
	SSLMode        string        `koanf:"sslmode"`
	ReplicaDSNs    []string      `koanf:"replica_dsns"`
	AutoMigrate    bool          `koanf:"auto_migrate"`
	SlowThreshold  time.Duration `koanf:"slow_threshold"`
	MongoURI       string        `koanf:"mongo_uri"`
	MongoDatabase  string        `koanf:"mongo_database"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

// PostgresDSN returns DSN when set, otherwise builds one from the discrete fields.
func (d DatabaseConfig) PostgresDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

func (d DatabaseConfig) IsPostgres() bool {
	return d.Type == DatabasePostgres || d.Type == DatabaseSupabase
}

type AuthConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	JWTSecretSSMParam string        `koanf:"jwt_secret_ssm_param"`
	AWSRegion         string        `koanf:"aws_region"`
	TokenTTL          time.Duration `koanf:"token_ttl"`
	Issuer            string        `koanf:"issuer"`
	BcryptCost        int           `koanf:"bcrypt_cost"`
}

type MailConfig struct {
	ResendAPIKey string        `koanf:"resend_api_key"`
	ResendURL    string        `koanf:"resend_url"`
	From         string        `koanf:"from"`
	AdminEmail   string        `koanf:"admin_email"`
	Timeout      time.Duration `koanf:"timeout"`
}

func (m MailConfig) Enabled() bool {
	return m.ResendAPIKey != "" && m.From != ""
}

type SMSConfig struct {
	TwilioAccountSID string `koanf:"twilio_account_sid"`
	TwilioAuthToken  string `koanf:"twilio_auth_token"`
	From             string `koanf:"from"`
	AdminPhone       string `koanf:"admin_phone"`
}

func (s SMSConfig) Enabled() bool {
	return s.TwilioAccountSID != "" && s.TwilioAuthToken != "" && s.From != "" && s.AdminPhone != ""
}

type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the configuration used before any file or environment override.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     180 * time.Second,
			WriteTimeout:    180 * time.Second,
			IdleTimeout:     180 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxBodyBytes:    10 << 20,
		},
		Database: DatabaseConfig{
			Type:           DatabasePostgres,
			Port:           5432,
			SSLMode:        "require",
			AutoMigrate:    true,
			SlowThreshold:  10 * time.Second,
			MongoDatabase:  "portfolio",
			ConnectTimeout: 10 * time.Second,
		},
		Auth: AuthConfig{
			TokenTTL:   7 * 24 * time.Hour,
			Issuer:     "artist-portfolio-backend",
			BcryptCost: 12,
		},
		Mail: MailConfig{
			ResendURL: "https://api.resend.com/emails",
			Timeout:   15 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"http://localhost:3000"},
			RateLimitRequests: 100,
			RateLimitWindow:   15 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.MaxBodyBytes <= 0 {
		problems = append(problems, "server.max_body_bytes must be positive")
	}

	switch c.Database.Type {
	case DatabasePostgres, DatabaseSupabase:
		if c.Database.DSN == "" && c.Database.Host == "" {
			problems = append(problems, "database.dsn or database.host is required for postgres")
		}
	case DatabaseMongo:
		if c.Database.MongoURI == "" {
			problems = append(problems, "database.mongo_uri is required for mongo")
		}
	case DatabaseMemory:
	default:
		problems = append(problems, fmt.Sprintf("unsupported database.type %q", c.Database.Type))
	}

	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		problems = append(problems, "auth.token_ttl must be positive")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		problems = append(problems, "auth.bcrypt_cost must be between 4 and 31")
	}

	if !c.Security.RateLimitDisabled && (c.Security.RateLimitRequests < 1 || c.Security.RateLimitWindow <= 0) {
		problems = append(problems, "security rate limit needs positive requests and window")
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("unsupported logging.format %q", c.Logging.Format))
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
