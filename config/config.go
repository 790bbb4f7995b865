package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"restaurant-api/models"

	"github.com/glebarez/sqlite"
	"github.com/goccy/go-yaml"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	devJWTSecret = "restaurant_dev_secret_change_me"
)

type Config struct {
	Port        string           `yaml:"port"`
	Env         string           `yaml:"env"`
	FrontendURL string           `yaml:"frontend_url"`
	Seed        bool             `yaml:"seed"`
	Database    DatabaseConfig   `yaml:"database"`
	JWT         JWTConfig        `yaml:"jwt"`
	Mail        MailConfig       `yaml:"mail"`
	RabbitMQ    RabbitMQConfig   `yaml:"rabbitmq"`
	Restaurant  RestaurantConfig `yaml:"restaurant"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	// TTL is a Go duration string such as "24h".
	TTL string `yaml:"ttl"`
}

type MailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	From           string `yaml:"from"`
}

// RabbitMQConfig is optional; with an empty URL order events are dropped.
type RabbitMQConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

// RestaurantConfig feeds the ticket header and outgoing mail.
type RestaurantConfig struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
	Website string `yaml:"website"`
}

// Default returns the configuration used when nothing else is provided.
func Default() Config {
	return Config{
		Port:        "8080",
		Env:         EnvDevelopment,
		FrontendURL: "http://localhost:5173",
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			DSN:    "restaurant.db?_pragma=foreign_keys(1)",
		},
		JWT:      JWTConfig{Secret: devJWTSecret, TTL: "24h"},
		Mail:     MailConfig{From: "no-reply@restaurant.local"},
		RabbitMQ: RabbitMQConfig{Exchange: "order_events"},
		Restaurant: RestaurantConfig{
			Name:    "Restaurant",
			Address: "Restaurant address",
			Phone:   "Tel: -",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty or missing), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Env = getEnv("APP_ENV", cfg.Env)
	cfg.FrontendURL = getEnv("FRONTEND_URL", cfg.FrontendURL)
	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.DSN = getEnv("DB_DSN", cfg.Database.DSN)
	cfg.JWT.Secret = getEnv("JWT_SECRET", cfg.JWT.Secret)
	cfg.JWT.TTL = getEnv("JWT_TTL", cfg.JWT.TTL)
	cfg.Mail.SendGridAPIKey = getEnv("SENDGRID_API_KEY", cfg.Mail.SendGridAPIKey)
	cfg.Mail.From = getEnv("MAIL_FROM", cfg.Mail.From)
	cfg.RabbitMQ.URL = getEnv("RABBITMQ_URL", cfg.RabbitMQ.URL)
	cfg.RabbitMQ.Exchange = getEnv("RABBITMQ_EXCHANGE", cfg.RabbitMQ.Exchange)
	cfg.Restaurant.Name = getEnv("RESTAURANT_NAME", cfg.Restaurant.Name)
	cfg.Restaurant.Address = getEnv("RESTAURANT_ADDRESS", cfg.Restaurant.Address)
	cfg.Restaurant.Phone = getEnv("RESTAURANT_PHONE", cfg.Restaurant.Phone)
	cfg.Restaurant.Website = getEnv("RESTAURANT_WEBSITE", cfg.Restaurant.Website)
	if v := os.Getenv("SEED"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("SEED: %w", err)
		}
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is required")
	}
	ttl, err := time.ParseDuration(c.JWT.TTL)
	if err != nil {
		return fmt.Errorf("invalid jwt ttl %q: %w", c.JWT.TTL, err)
	}
	if ttl <= 0 {
		return fmt.Errorf("jwt ttl must be positive, got %s", ttl)
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required")
	}
	if c.IsProduction() && c.JWT.Secret == devJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.Env == EnvProduction }

// TokenTTL returns the parsed access token lifetime. Validate guarantees it parses.
func (c *Config) TokenTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.JWT.TTL)
	return ttl
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// OpenDB connects to the configured database and migrates the schema.
func OpenDB(cfg DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table, parents before children.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Dish{},
		&models.Table{},
		&models.Order{},
		&models.OrderDetail{},
		&models.OrderStatusHistory{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
