package config_test

import (
	"testing"
	"time"

	"github.com/techBikashRepo/jobbee-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("jobbee-api")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.IsProduction() {
		t.Error("default env reported as production")
	}
	if cfg.Storage.Driver != "disk" {
		t.Errorf("storage driver = %q, want disk", cfg.Storage.Driver)
	}
	if cfg.Upload.MaxBytes != 2*1024*1024 {
		t.Errorf("max upload = %d", cfg.Upload.MaxBytes)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("redis addr = %q, want empty", cfg.Redis.Addr)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("APP_ENV", "production")
	t.Setenv("MAX_FILE_SIZE", "1048576")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("DB_NAME", "jobs_test")

	cfg, err := config.Load("jobbee-api")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "9999" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if !cfg.Server.IsProduction() {
		t.Error("production env not detected")
	}
	if cfg.Upload.MaxBytes != 1048576 {
		t.Errorf("max upload = %d", cfg.Upload.MaxBytes)
	}
	if cfg.RateLimit.Window != 30*time.Second {
		t.Errorf("rate limit window = %v", cfg.RateLimit.Window)
	}
	if cfg.DB.DBName != "jobs_test" {
		t.Errorf("db name = %q", cfg.DB.DBName)
	}
}

func TestDSN(t *testing.T) {
	t.Setenv("DB_HOST", "dbhost")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "svc")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "jobs")

	cfg, err := config.Load("jobbee-api")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := "host=dbhost port=5433 user=svc password=pw dbname=jobs sslmode=disable"
	if got := cfg.DB.GetDSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}
