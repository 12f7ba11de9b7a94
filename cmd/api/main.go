package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"urbanpantry/internal/config"
	"urbanpantry/internal/database"
	"urbanpantry/internal/routes"
)

func main() {
	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	client := database.Connect(cfg.MongoURI)
	db := client.Database(cfg.MongoDB)
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		slog.Error("index creation failed", "error", err)
		os.Exit(1)
	}

	router := gin.Default()
	routes.RegisterRoutes(router, db, cfg)

	slog.Info("server listening", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
