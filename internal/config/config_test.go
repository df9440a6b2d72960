package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_ADDR", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.ServerAddr != ":8000" {
		t.Errorf("expected default server addr :8000, got %s", cfg.ServerAddr)
	}
	if cfg.DBPort != "54321" {
		t.Errorf("expected default db port 54321, got %s", cfg.DBPort)
	}
	if cfg.DBName != "makepost_db" {
		t.Errorf("expected default db name makepost_db, got %s", cfg.DBName)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_USER", "produser")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("DB_HOST", "db.internal")

	cfg := Load()

	if cfg.DBUser != "produser" {
		t.Errorf("expected db user produser, got %s", cfg.DBUser)
	}
	if cfg.DBPassword != "s3cret" {
		t.Errorf("expected db password from environment, got %s", cfg.DBPassword)
	}
	if cfg.DBHost != "db.internal" {
		t.Errorf("expected db host db.internal, got %s", cfg.DBHost)
	}
}
