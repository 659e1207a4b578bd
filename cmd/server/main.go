package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Hema-02/intent-cloud-project/internal/server"
	"github.com/Hema-02/intent-cloud-project/pkg/config"
	"github.com/Hema-02/intent-cloud-project/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger
	log := logger.New(cfg.Logger)

	gin.SetMode(gin.ReleaseMode)

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize server", "error", err)
	}

	// Start server in goroutine
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Server exited")
}
