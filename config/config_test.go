package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"restaurant-api/models"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Fatalf("expected sqlite driver, got %q", cfg.Database.Driver)
	}
	if cfg.TokenTTL() != 24*time.Hour {
		t.Fatalf("expected 24h ttl, got %s", cfg.TokenTTL())
	}
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`port: "9000"
database:
  driver: postgres
  dsn: postgres://localhost/restaurant
jwt:
  secret: from-file
  ttl: 2h
restaurant:
  name: La Terraza
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "9100")
	t.Setenv("RESTAURANT_PHONE", "555-0100")
	t.Setenv("SEED", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "9100" {
		t.Errorf("env should override file port, got %q", cfg.Port)
	}
	if cfg.Database.Driver != DriverPostgres || cfg.Database.DSN != "postgres://localhost/restaurant" {
		t.Errorf("unexpected database config %+v", cfg.Database)
	}
	if cfg.TokenTTL() != 2*time.Hour {
		t.Errorf("expected 2h ttl, got %s", cfg.TokenTTL())
	}
	if cfg.Restaurant.Name != "La Terraza" || cfg.Restaurant.Phone != "555-0100" {
		t.Errorf("unexpected restaurant config %+v", cfg.Restaurant)
	}
	if !cfg.Seed {
		t.Error("expected seed to be enabled")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }},
		{name: "bad ttl", mutate: func(c *Config) { c.JWT.TTL = "a day" }},
		{name: "negative ttl", mutate: func(c *Config) { c.JWT.TTL = "-1h" }},
		{name: "dev secret in production", mutate: func(c *Config) { c.Env = EnvProduction }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestOpenDB_SQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	db, err := OpenDB(DatabaseConfig{Driver: DriverSQLite, DSN: dsn})
	if err != nil {
		t.Fatalf("OpenDB returned error: %v", err)
	}
	for _, m := range []any{&models.User{}, &models.Dish{}, &models.Table{}, &models.Order{}, &models.OrderDetail{}, &models.OrderStatusHistory{}} {
		if !db.Migrator().HasTable(m) {
			t.Errorf("expected table for %T", m)
		}
	}
}
