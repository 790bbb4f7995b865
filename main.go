package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-api/config"
	"restaurant-api/events"
	"restaurant-api/handlers"
	"restaurant-api/mailer"
	"restaurant-api/middleware"
	"restaurant-api/routes"
	"restaurant-api/seed"
	"restaurant-api/services"
	"restaurant-api/ticket"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	var logHandler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.IsProduction() {
		opts.Level = slog.LevelInfo
		logHandler = slog.NewJSONHandler(os.Stdout, opts)
		gin.SetMode(gin.ReleaseMode)
	}
	slog.SetDefault(slog.New(logHandler))

	db, err := config.OpenDB(cfg.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	slog.Info("✅ Database connected and migrated", "driver", cfg.Database.Driver)

	if cfg.Seed {
		if err := seed.Run(context.Background(), db); err != nil {
			slog.Error("Failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	var m mailer.Mailer = mailer.Log{}
	if cfg.Mail.SendGridAPIKey != "" {
		m = mailer.NewSendGrid(cfg.Mail.SendGridAPIKey, cfg.Restaurant.Name, cfg.Mail.From)
	} else {
		slog.Warn("SENDGRID_API_KEY not set, emails will only be logged")
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.RabbitMQ.URL != "" {
		amqpPub, err := events.DialAMQP(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			// events are best effort, the API works without a broker
			slog.Warn("RabbitMQ unavailable, order events disabled", "error", err)
		} else {
			defer amqpPub.Close()
			publisher = amqpPub
		}
	}

	tokens := middleware.NewTokens(cfg.JWT.Secret, cfg.TokenTTL())
	users := services.NewUserService(db)
	h := &handlers.Handler{
		Auth:   services.NewAuthService(db, tokens, m, cfg.Restaurant.Name, cfg.FrontendURL),
		Users:  users,
		Dishes: services.NewDishService(db),
		Tables: services.NewTableService(db),
		Orders: services.NewOrderService(db, publisher),
		Restaurant: ticket.Restaurant{
			Name:    cfg.Restaurant.Name,
			Address: cfg.Restaurant.Address,
			Phone:   cfg.Restaurant.Phone,
			Website: cfg.Restaurant.Website,
		},
		Production: cfg.IsProduction(),
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(h, tokens, users),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("🚀 Server running", "url", "http://localhost:"+cfg.Port, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	slog.Info("Server exited gracefully.")
}
