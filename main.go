package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/api"
	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logging.SetupLogging(logrus.InfoLevel).WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.WithFields(logrus.Fields{
		"environment":    envConfig.Environment,
		"databaseClient": envConfig.DatabaseClient,
	}).Info("ledger-server starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbStorage, err := storage.NewStorage(ctx, envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}

	httpRest := api.Rest{
		Logger:  logger,
		Port:    envConfig.Port,
		Service: service.NewService(dbStorage),
		DB:      dbStorage.DB,
	}
	serveErr := httpRest.Serve(ctx)

	if err := dbStorage.Close(); err != nil {
		logger.WithError(err).Error("storage.Close")
	}
	if serveErr != nil {
		os.Exit(1)
	}
	logger.Info("ledger-server stopped")
}
