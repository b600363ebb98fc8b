package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar names an optional YAML file layered between defaults and environment.
const ConfigPathEnvVar = "CONFIG_PATH"

// envMappings maps environment variable names (lower-cased) to koanf keys.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	"host":                  "server.host",
	"port":                  "server.port",
	"read_timeout_seconds":  "server.read_timeout",
	"write_timeout_seconds": "server.write_timeout",
	"idle_timeout_seconds":  "server.idle_timeout",
	"shutdown_timeout":      "server.shutdown_timeout",
	"max_body_bytes":        "server.max_body_bytes",

	"db_type":               "database.type",
	"database_url":          "database.dsn",
	"database_replica_urls": "database.replica_dsns",
	"db_host":               "database.host",
	"db_port":               "database.port",
	"db_user":               "database.user",
	"db_password":           "database.password",
	"db_name":               "database.name",
	"db_sslmode":            "database.sslmode",
	"supabase_db_host":      "database.host",
	"supabase_db_port":      "database.port",
	"supabase_db_user":      "database.user",
	"supabase_db_password":  "database.password",
	"supabase_db_name":      "database.name",
	"db_auto_migrate":       "database.auto_migrate",
	"db_slow_threshold":     "database.slow_threshold",
	"mongodb_uri":           "database.mongo_uri",
	"mongodb_database":      "database.mongo_database",
	"db_connect_timeout":    "database.connect_timeout",

	"jwt_secret":           "auth.jwt_secret",
	"jwt_secret_ssm_param": "auth.jwt_secret_ssm_param",
	"aws_region":           "auth.aws_region",
	"jwt_expires_in":       "auth.token_ttl",
	"jwt_issuer":           "auth.issuer",
	"bcrypt_cost":          "auth.bcrypt_cost",

	"resend_api_key":    "mail.resend_api_key",
	"resend_url":        "mail.resend_url",
	"resend_from_email": "mail.from",
	"admin_email":       "mail.admin_email",
	"mail_timeout":      "mail.timeout",

	"twilio_account_sid": "sms.twilio_account_sid",
	"twilio_auth_token":  "sms.twilio_auth_token",
	"twilio_from_number": "sms.from",
	"admin_phone":        "sms.admin_phone",

	"accepted_origins":    "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
}

var sliceConfigPaths = []string{
	"database.replica_dsns",
	"security.cors_origins",
}

// Keys whose environment form is a bare number of seconds.
var secondsConfigPaths = []string{
	"server.read_timeout",
	"server.write_timeout",
	"server.idle_timeout",
}

var durationConfigPaths = []string{
	"server.shutdown_timeout",
	"database.slow_threshold",
	"database.connect_timeout",
	"auth.token_ttl",
	"mail.timeout",
	"security.rate_limit_window",
}

func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}

// Load layers defaults, the optional YAML file and the environment, resolves the
// signing secret and validates the result.
func Load(ctx context.Context) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := normalize(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if cfg.Auth.JWTSecret == "" && cfg.Auth.JWTSecretSSMParam != "" {
		client, err := newSSMClient(ctx, cfg.Auth.AWSRegion)
		if err != nil {
			return nil, err
		}
		secret, err := fetchParameter(ctx, client, cfg.Auth.JWTSecretSSMParam)
		if err != nil {
			return nil, err
		}
		cfg.Auth.JWTSecret = secret
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// normalize rewrites environment-style values into the shapes Unmarshal expects.
func normalize(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}

	for _, path := range secondsConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(s); err == nil {
			if err := k.Set(path, fmt.Sprintf("%ds", n)); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}

	for _, path := range durationConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		d, err := ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %w", path, err)
		}
		if err := k.Set(path, d.String()); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}
