package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/carson-networks/budget-tracker/api"
	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/config"
	"github.com/carson-networks/budget-tracker/internal/events"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/status"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/operator"
	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/memory"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

const (
	maxSessions     = 10000
	janitorInterval = time.Minute
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "budget-tracker",
	Short: "Personal budget tracker backend",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending postgres migrations and exit",
	RunE:  runMigrate,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.AddCommand(serveCmd, migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *logrus.Logger, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, nil, err
	}
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		return nil, nil, fmt.Errorf("config.ProcessEnvironmentVariables: %w", err)
	}
	if err := envConfig.Validate(); err != nil {
		return nil, nil, err
	}
	level, _ := logrus.ParseLevel(envConfig.LogLevel)
	return envConfig, logging.SetupLogging(level), nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	envConfig, logger, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Info("budget-tracker starting")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, pinger, err := openBackend(ctx, envConfig, logger)
	if err != nil {
		logger.WithError(err).Error("openBackend")
		return err
	}
	store := storage.New(backend)
	defer func() {
		if err := store.Close(); err != nil {
			logger.WithError(err).Warn("Storage.Close")
		}
	}()
	delegator := operator.NewOperatorDelegator(store, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	publisher := openPublisher(envConfig, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.WithError(err).Warn("Publisher.Close")
		}
	}()

	gateway := auth.NewGateway(store, delegator, auth.NewRegistry(maxSessions, envConfig.SessionTTL))
	go gateway.RunJanitor(ctx, janitorInterval)

	httpRest := api.Rest{
		Logger:  logger,
		Port:    envConfig.Port,
		Service: service.NewService(store, delegator, publisher),
		Gateway: gateway,
		Status:  pinger,
	}
	return httpRest.Serve(ctx)
}

func openBackend(ctx context.Context, envConfig *config.Config, logger *logrus.Logger) (storage.Backend, status.Pinger, error) {
	if envConfig.DataBackend == config.BackendMemory {
		if envConfig.MemoryDataFile == "" {
			logger.Info("Backend.Memory.volatile")
			return memory.New(), nil, nil
		}
		store, err := memory.Open(envConfig.MemoryDataFile)
		if err != nil {
			return nil, nil, fmt.Errorf("memory.Open: %w", err)
		}
		logger.WithField("file", envConfig.MemoryDataFile).Info("Backend.Memory.persistent")
		return store, nil, nil
	}

	pg, err := sqlconfig.Open(ctx, envConfig.PostgresConnectionString())
	if err != nil {
		return nil, nil, err
	}
	if err := logMigrations(pg, logger); err != nil {
		_ = pg.Close()
		return nil, nil, err
	}
	return pg, pg.DB(), nil
}

func openPublisher(envConfig *config.Config, logger *logrus.Logger) events.Publisher {
	if envConfig.AMQPURL == "" {
		return events.NopPublisher{}
	}
	publisher, err := events.NewAMQPPublisher(envConfig.AMQPURL, envConfig.AMQPExchange)
	if err != nil {
		logger.WithError(err).Warn("events.NewAMQPPublisher, change events disabled")
		return events.NopPublisher{}
	}
	return publisher
}

func logMigrations(pg *sqlconfig.Postgres, logger *logrus.Logger) error {
	result, err := sqlconfig.RunMigrations(pg.DB())
	if err != nil {
		return fmt.Errorf("sqlconfig.RunMigrations: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"preMigrationVersion":  result.PreMigrationVersion,
		"postMigrationVersion": result.PostMigrationVersion,
	}).Info("Migration status")
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	envConfig, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if envConfig.DataBackend != config.BackendPostgres {
		return fmt.Errorf("migrate needs DATA_BACKEND=%s, got %s", config.BackendPostgres, envConfig.DataBackend)
	}

	pg, err := sqlconfig.Open(cmd.Context(), envConfig.PostgresConnectionString())
	if err != nil {
		logger.WithError(err).Error("sqlconfig.Open")
		return err
	}
	defer pg.Close()

	return logMigrations(pg, logger)
}
