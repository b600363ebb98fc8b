package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// isolateEnv clears every variable Load reads so the host environment cannot leak in.
func isolateEnv(t *testing.T) {
	t.Helper()
	for key := range envMappings {
		t.Setenv(strings.ToUpper(key), "")
		os.Unsetenv(strings.ToUpper(key))
	}
	t.Setenv(ConfigPathEnvVar, "")
	os.Unsetenv(ConfigPathEnvVar)
}

func TestLoadDefaultsAndEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DB_TYPE", "memory")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("ACCEPTED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("JWT_EXPIRES_IN", "1d")
	t.Setenv("READ_TIMEOUT_SECONDS", "30")
	t.Setenv("RATE_LIMIT_WINDOW", "60")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("read timeout = %v, want 30s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 180*time.Second {
		t.Errorf("write timeout = %v, want default 180s", cfg.Server.WriteTimeout)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("token ttl = %v, want 24h", cfg.Auth.TokenTTL)
	}
	if cfg.Security.RateLimitWindow != time.Minute {
		t.Errorf("rate limit window = %v, want 1m", cfg.Security.RateLimitWindow)
	}
	if cfg.Security.RateLimitRequests != 100 {
		t.Errorf("rate limit requests = %d, want default 100", cfg.Security.RateLimitRequests)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("cors origins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.Database.Type != DatabaseMemory {
		t.Errorf("db type = %q", cfg.Database.Type)
	}
}

func TestLoadFromFile(t *testing.T) {
	isolateEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 7000
database:
  type: mongo
  mongo_uri: mongodb://localhost:27017
auth:
  jwt_secret: from-file
logging:
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PORT", "7100")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7100 {
		t.Errorf("env should override file: port = %d", cfg.Server.Port)
	}
	if cfg.Database.Type != DatabaseMongo || cfg.Database.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("unexpected database config %+v", cfg.Database)
	}
	if cfg.Auth.JWTSecret != "from-file" {
		t.Errorf("jwt secret = %q", cfg.Auth.JWTSecret)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("log format = %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DB_TYPE", "memory")

	_, err := Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "auth.jwt_secret is required") {
		t.Fatalf("expected missing secret error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid memory", func(c *Config) { c.Database.Type = DatabaseMemory }, ""},
		{"valid postgres dsn", func(c *Config) { c.Database.DSN = "postgres://x" }, ""},
		{"postgres without dsn", func(c *Config) {}, "database.dsn or database.host"},
		{"mongo without uri", func(c *Config) { c.Database.Type = DatabaseMongo }, "database.mongo_uri"},
		{"unknown type", func(c *Config) { c.Database.Type = "sqlite" }, "unsupported database.type"},
		{"bad port", func(c *Config) { c.Database.Type = DatabaseMemory; c.Server.Port = 0 }, "server.port"},
		{"bad ttl", func(c *Config) { c.Database.Type = DatabaseMemory; c.Auth.TokenTTL = 0 }, "auth.token_ttl"},
		{"bad format", func(c *Config) { c.Database.Type = DatabaseMemory; c.Logging.Format = "xml" }, "logging.format"},
		{"rate limit off", func(c *Config) {
			c.Database.Type = DatabaseMemory
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitRequests = 0
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Auth.JWTSecret = "secret"
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "n", Port: 5432, SSLMode: "disable"}
	want := "host=db user=u password=p dbname=n port=5432 sslmode=disable"
	if got := d.PostgresDSN(); got != want {
		t.Errorf("PostgresDSN() = %q, want %q", got, want)
	}

	d.DSN = "postgres://explicit"
	if got := d.PostgresDSN(); got != "postgres://explicit" {
		t.Errorf("explicit DSN not preferred: %q", got)
	}
}

func TestParseDuration(t *testing.T) {
	tests := map[string]time.Duration{
		"7d":    7 * 24 * time.Hour,
		"1h":    time.Hour,
		"90":    90 * time.Second,
		"1h30m": 90 * time.Minute,
	}
	for in, want := range tests {
		got, err := ParseDuration(in)
		if err != nil || got != want {
			t.Errorf("ParseDuration(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	for _, bad := range []string{"", "xd", "soon"} {
		if _, err := ParseDuration(bad); err == nil {
			t.Errorf("ParseDuration(%q) should fail", bad)
		}
	}
}

type fakeParameterGetter struct {
	value string
	err   error
	asked string
}

func (f *fakeParameterGetter) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.asked = aws.ToString(in.Name)
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(f.value)}}, nil
}

func TestFetchParameter(t *testing.T) {
	getter := &fakeParameterGetter{value: "s3cret"}
	got, err := fetchParameter(context.Background(), getter, "/portfolio/jwt")
	if err != nil || got != "s3cret" {
		t.Fatalf("fetchParameter() = %q, %v", got, err)
	}
	if getter.asked != "/portfolio/jwt" {
		t.Errorf("asked for %q", getter.asked)
	}

	if _, err := fetchParameter(context.Background(), &fakeParameterGetter{}, "/empty"); err == nil {
		t.Error("expected empty parameter to fail")
	}

	boom := errors.New("boom")
	if _, err := fetchParameter(context.Background(), &fakeParameterGetter{err: boom}, "/x"); !errors.Is(err, boom) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}
