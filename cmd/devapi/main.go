package main

import (
	"log"

	"github.com/JaydevKalariyaa/proxima-sales/internal/config"
	"github.com/JaydevKalariyaa/proxima-sales/internal/stubserver"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger, err := buildLogger(cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	server, err := stubserver.New(cfg.DevAPI, logger)
	if err != nil {
		logger.Fatal("failed to start dev api", zap.Error(err))
	}

	logger.Info("starting dev api",
		zap.String("port", cfg.DevAPI.Port),
		zap.String("database", cfg.DevAPI.DatabasePath),
		zap.String("login_email", cfg.DevAPI.Email),
	)

	if err := server.Run(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
