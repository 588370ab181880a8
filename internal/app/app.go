package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/denmor86/ya-bankist/internal/config"
	"github.com/denmor86/ya-bankist/internal/events"
	"github.com/denmor86/ya-bankist/internal/logger"
	"github.com/denmor86/ya-bankist/internal/network/router"
	"github.com/denmor86/ya-bankist/internal/services"
	"github.com/denmor86/ya-bankist/internal/storage"
	"github.com/denmor86/ya-bankist/internal/worker"
)

const (
	BreakerFailures = 5
	BreakerTimeout  = 30 * time.Second
	ShutdownTimeout = 5 * time.Second
)

// NewStorage - postgres за circuit breaker при заданном DSN, иначе справочник в памяти
func NewStorage(ctx context.Context, cfg config.Config) (storage.IStorage, error) {
	if cfg.Server.DatabaseDSN == "" {
		logger.Info("Using in-memory storage")
		return storage.NewMemoryStorage(), nil
	}

	db, err := storage.NewDatabase(cfg.Server.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("create database: %w", err)
	}
	if err := db.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	logger.Info("Using postgres storage")
	breaker := storage.NewCircuitBreaker("accounts-storage", BreakerFailures, BreakerTimeout)
	return storage.NewBreakerStorage(storage.NewAccountsStorage(db), breaker), nil
}

// NewPublisher - публикация событий в AMQP при заданном URL, иначе отключена
func NewPublisher(cfg config.Config) (events.Publisher, error) {
	if cfg.Events.AMQPURL == "" {
		return events.NoopPublisher{}, nil
	}
	publisher, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
	if err != nil {
		return nil, err
	}
	logger.Info("Publishing ledger events", "exchange", cfg.Events.Exchange)
	return publisher, nil
}

func Run(cfg config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	accounts, err := NewStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer accounts.Close()

	publisher, err := NewPublisher(cfg)
	if err != nil {
		return err
	}
	defer publisher.Close()

	identity := services.NewIdentity(cfg)
	bank := services.NewBank(accounts, identity, publisher, cfg.Server.SessionTTL)

	seeds, err := services.LoadSeed(cfg.Bank.SeedFile)
	if err != nil {
		return err
	}
	if err := bank.Seed(ctx, seeds); err != nil {
		return fmt.Errorf("seed directory: %w", err)
	}

	sessions := services.NewSessionRegistry(nil)
	router := router.NewRouter(cfg, accounts, bank, identity, sessions)

	server := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: router.HandleRouter(),
	}

	// Создание и запуск воркеров очистки
	sessionReaper := worker.NewReaper("sessions", sessions, time.Minute)
	limiterReaper := worker.NewReaper("login-limiter", router.Limiter, time.Minute)
	sessionReaper.Start(ctx)
	limiterReaper.Start(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting server", "address", cfg.Server.ListenAddr, "session_ttl", cfg.Server.SessionTTL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("error listen server", "error", err)
			stop <- syscall.SIGTERM
		}
	}()

	<-stop
	logger.Info("Shutdown server")
	sessionReaper.Stop()
	limiterReaper.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutdown server", "error", err)
	}
	logger.Info("Server stopped")
	return nil
}
