package main

import (
	"context"
	"net/http"
	"os"

	"github.com/yuan-yexi/post-maker/internal/api"
	"github.com/yuan-yexi/post-maker/internal/auth"
	"github.com/yuan-yexi/post-maker/internal/config"
	"github.com/yuan-yexi/post-maker/internal/db"
	"github.com/yuan-yexi/post-maker/internal/health"
	"github.com/yuan-yexi/post-maker/internal/logger"
	"github.com/yuan-yexi/post-maker/internal/metrics"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	ctx := context.Background()

	logger.SetDefault(logger.New(os.Stdout, logger.ParseLevel(cfg.LogLevel), ""))
	log := logger.Default().WithComponent("server")

	database, err := db.New(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	if err != nil {
		log.Error(ctx, "failed to connect to database", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Error(ctx, "failed to run migrations", err)
		os.Exit(1)
	}

	userRepo := db.NewUserRepository(database)
	postRepo := db.NewPostRepository(database)
	tokenRepo := db.NewTokenRepository(database)

	authService := auth.NewService(userRepo, tokenRepo)
	authHandlers := auth.NewHandlers(authService)
	postHandlers := api.NewPostHandlers(postRepo)
	userHandlers := api.NewUserHandlers(userRepo)

	checker := health.NewChecker(&health.CheckerConfig{DB: database.DB, Version: version})
	m := metrics.New()

	router := api.NewRouter(authHandlers, authService, postHandlers, userHandlers, health.NewHandler(checker), m)

	log.Info(ctx, "starting server", map[string]interface{}{"addr": cfg.ServerAddr})
	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		log.Error(ctx, "server failed", err)
		os.Exit(1)
	}
}
