package main

import (
	"context"

	"form-intake/config"
	"form-intake/internal/app"
	"form-intake/internal/server"
	"form-intake/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.LogMode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	a, err := app.New(context.Background(), cfg, l)
	if err != nil {
		l.Logger.Fatal("Failed to initialize application: " + err.Error())
	}
	defer func() {
		if err := a.Close(); err != nil {
			l.Errorf("Error closing resources: %s", err)
		}
	}()

	srv := server.New(cfg, l)
	srv.SetupRoutes(a.Handlers())

	if err := srv.Start(); err != nil {
		l.Errorf("Server exited with error: %s", err)
	}
}
