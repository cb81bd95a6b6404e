package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	deliveryHTTP "github.com/frontandrew/flightcrud/internal/delivery/http"
	"github.com/frontandrew/flightcrud/internal/infrastructure/events"
	"github.com/frontandrew/flightcrud/internal/pkg/config"
	"github.com/frontandrew/flightcrud/internal/pkg/database"
	"github.com/frontandrew/flightcrud/internal/pkg/logger"
	"github.com/frontandrew/flightcrud/internal/pkg/redis"
	"github.com/frontandrew/flightcrud/internal/repository"
	"github.com/frontandrew/flightcrud/internal/repository/memory"
	"github.com/frontandrew/flightcrud/internal/repository/postgres"
	"github.com/frontandrew/flightcrud/internal/usecase/flight"
	"github.com/frontandrew/flightcrud/internal/usecase/passenger"
)

// storage - выбранная реализация хранилища
type storage struct {
	flights    repository.FlightRepository
	passengers repository.PassengerRepository
	txManager  repository.TxManager
	close      func()
}

func main() {
	// =========================================================================
	// Загрузка конфигурации
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Инициализация logger
	// =========================================================================

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Output)
	logger.SetGlobalLogger(log)
	log.Info("Starting flights API server", map[string]interface{}{
		"storage": cfg.Storage.Driver,
	})

	// =========================================================================
	// Подключение к хранилищу
	// =========================================================================

	ctx := context.Background()

	var store *storage
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store, err = newMemoryStorage(cfg, log)
	default:
		store, err = newPostgresStorage(ctx, cfg, log)
	}
	if err != nil {
		log.Fatal("Failed to initialize storage", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer store.close()

	// =========================================================================
	// Публикация событий бронирования
	// =========================================================================

	publisher := events.NewNoopPublisher()
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.BookingTopic, cfg.Kafka.WriteTimeout)
		log.Info("Kafka publisher initialized", map[string]interface{}{
			"brokers": cfg.Kafka.Brokers,
			"topic":   cfg.Kafka.BookingTopic,
		})
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// =========================================================================
	// Создание use case services
	// =========================================================================

	flightService := flight.NewService(store.flights, store.txManager, publisher, log)
	passengerService := passenger.NewService(store.passengers, store.txManager, log)

	log.Info("Use case services initialized")

	// =========================================================================
	// Создание HTTP handlers и router
	// =========================================================================

	flightHandler := deliveryHTTP.NewFlightHandler(flightService, log)
	passengerHandler := deliveryHTTP.NewPassengerHandler(passengerService, log)

	router := deliveryHTTP.NewRouter(flightHandler, passengerHandler, log)
	handler := router.Setup()

	log.Info("HTTP router configured")

	// =========================================================================
	// Создание HTTP сервера
	// =========================================================================

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("API server listening", map[string]interface{}{
			"address": srv.Addr,
		})
		serverErrors <- srv.ListenAndServe()
	}()

	// =========================================================================
	// Graceful shutdown
	// =========================================================================

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
		}

	case sig := <-shutdown:
		log.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})

			// Принудительное закрытие
			if err := srv.Close(); err != nil {
				log.Error("Failed to close server", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		log.Info("Server stopped gracefully")
	}
}

func newPostgresStorage(ctx context.Context, cfg *config.Config, log logger.Logger) (*storage, error) {
	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	log.Info("Connected to PostgreSQL", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Database,
	})

	if cfg.Database.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			database.Close(db)
			return nil, err
		}
		log.Info("Database schema is up to date")
	}

	return &storage{
		flights:    postgres.NewFlightRepository(db),
		passengers: postgres.NewPassengerRepository(db),
		txManager:  postgres.NewTxManager(db),
		close:      func() { database.Close(db) },
	}, nil
}

func newMemoryStorage(cfg *config.Config, log logger.Logger) (*storage, error) {
	var (
		seq     memory.Sequence = memory.NewCounterSequence()
		closeFn                 = func() {}
	)

	if cfg.Redis.Enabled {
		client, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}

		seq = redis.NewSequence(client)
		closeFn = func() {
			if err := client.Close(); err != nil {
				log.Error("Failed to close Redis client", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		log.Info("Using Redis ID sequence", map[string]interface{}{
			"address": cfg.Redis.Address(),
		})
	}

	store := memory.NewStore(seq)

	return &storage{
		flights:    memory.NewFlightRepository(store),
		passengers: memory.NewPassengerRepository(store),
		txManager:  store,
		close:      closeFn,
	}, nil
}
