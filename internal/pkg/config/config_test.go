package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func load(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	return LoadWith(context.Background(), envconfig.MapLookuper(env))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t, map[string]string{"JWT_SECRET": "dev-secret"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != EnvDevelopment || cfg.LogLevel != "info" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour || cfg.Auth.BcryptCost != 10 {
		t.Fatalf("unexpected auth defaults: %+v", cfg.Auth)
	}
	if cfg.Credit.IdempotencyTTL != 24*time.Hour || cfg.Credit.AuditWorkers != 4 {
		t.Fatalf("unexpected credit defaults: %+v", cfg.Credit)
	}
	if cfg.Mongo.Database != "corporate_banking" || cfg.Redis.Addr != "localhost:6379" || cfg.Redis.PoolSize != 10 {
		t.Fatalf("unexpected store defaults: %+v %+v", cfg.Mongo, cfg.Redis)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"JWT_SECRET":      "dev-secret",
		"TOKEN_TTL":       "90m",
		"BCRYPT_COST":     "12",
		"IDEMPOTENCY_TTL": "1h",
		"AUDIT_WORKERS":   "8",
		"MONGO_DB":        "bank",
		"REDIS_DB":        "2",
		"REDIS_PASSWORD":  "s3cret",
		"REDIS_POOL_SIZE": "32",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.TokenTTL != 90*time.Minute || cfg.Auth.BcryptCost != 12 {
		t.Fatalf("unexpected auth config: %+v", cfg.Auth)
	}
	if cfg.Credit.IdempotencyTTL != time.Hour || cfg.Credit.AuditWorkers != 8 {
		t.Fatalf("unexpected credit config: %+v", cfg.Credit)
	}
	if cfg.Mongo.Database != "bank" || cfg.Redis.DB != 2 || cfg.Redis.Password != "s3cret" || cfg.Redis.PoolSize != 32 {
		t.Fatalf("unexpected store config: %+v %+v", cfg.Mongo, cfg.Redis)
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing secret", map[string]string{}, "JWT_SECRET"},
		{"unknown env", map[string]string{"JWT_SECRET": "s", "ENV": "staging"}, "ENV"},
		{"short production secret", map[string]string{"JWT_SECRET": "short", "ENV": "production"}, "JWT_SECRET"},
		{"bcrypt cost", map[string]string{"JWT_SECRET": "s", "BCRYPT_COST": "2"}, "BCRYPT_COST"},
		{"audit workers", map[string]string{"JWT_SECRET": "s", "AUDIT_WORKERS": "0"}, "AUDIT_WORKERS"},
		{"redis pool", map[string]string{"JWT_SECRET": "s", "REDIS_POOL_SIZE": "0"}, "REDIS_POOL_SIZE"},
		{"token ttl", map[string]string{"JWT_SECRET": "s", "TOKEN_TTL": "0s"}, "TOKEN_TTL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(t, tc.env)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %s, got %v", tc.wantErr, err)
			}
		})
	}
}
