package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventory-ops/internal/application/inventory"
	"github.com/jhoicas/inventory-ops/internal/domain/repository"
	"github.com/jhoicas/inventory-ops/internal/infrastructure/events"
	"github.com/jhoicas/inventory-ops/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-ops/internal/infrastructure/observability"
	"github.com/jhoicas/inventory-ops/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventory-ops/internal/interfaces/http"
	"github.com/jhoicas/inventory-ops/pkg/config"
	"github.com/jhoicas/inventory-ops/pkg/logger"
)

// storage agrupa los adaptadores de persistencia elegidos por STORAGE_DRIVER.
type storage struct {
	txRunner  inventory.TxRunner
	levels    repository.StockLevelRepository
	movements repository.StockMovementRepository
	batches   repository.BatchRepository
	counts    repository.CycleCountRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.DB.Driver).
		Str("events", cfg.Events.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracing, err := observability.SetupTracing(ctx, observability.TracingConfig{
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Insecure:    cfg.Telemetry.OTLPInsecure,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar trazas")
	}

	store, err := newStorage(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	publisher, closePublisher := newPublisher(cfg.Events, log)
	defer closePublisher()

	locks := inventory.NewKeyLocker()
	ucLog := log.Component("inventory")
	ledger := inventory.NewRegisterMovementUseCase(store.txRunner, store.movements, locks, publisher, ucLog)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.AccessLog(log.Component("http")))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegisterMovement: ledger,
		StockLevels:      inventory.NewStockLevelUseCase(store.txRunner, store.levels, locks),
		Reservations:     inventory.NewReservationUseCase(store.txRunner, locks, ucLog),
		Batches:          inventory.NewBatchUseCase(store.batches),
		Replenishment:    inventory.NewReplenishmentUseCase(store.levels),
		Valuation:        inventory.NewValuationUseCase(store.levels),
		CycleCounts: inventory.NewCycleCountUseCase(
			store.counts, store.levels, ledger, locks, publisher, ucLog, cfg.Inventory.VarianceThreshold,
		),
	})

	go func() {
		addr := cfg.HTTP.Addr()
		log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown HTTP")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown trazas")
	}
	log.Info().Msg("servidor detenido")
}

func newStorage(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*storage, error) {
	switch cfg.Driver {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("PostgreSQL listo")
		return &storage{
			txRunner:  postgres.NewTxRunner(pool),
			levels:    postgres.NewStockLevelRepository(pool),
			movements: postgres.NewStockMovementRepository(pool),
			batches:   postgres.NewBatchRepository(pool),
			counts:    postgres.NewCycleCountRepository(pool),
			close:     pool.Close,
		}, nil
	case config.StorageMemory:
		s := memory.NewStore()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &storage{
			txRunner:  memory.NewTxRunner(s),
			levels:    memory.NewStockLevelRepository(s),
			movements: memory.NewStockMovementRepository(s),
			batches:   memory.NewBatchRepository(s),
			counts:    memory.NewCycleCountRepository(s),
			close:     func() {},
		}, nil
	}
	return nil, errors.New("STORAGE_DRIVER no soportado: " + cfg.Driver)
}

// newPublisher arma el bus de eventos. Kafka y Redis también escriben en el log.
func newPublisher(cfg config.EventsConfig, log *logger.Logger) (inventory.Publisher, func()) {
	logPub := events.NewLogPublisher(log.Component("events"))
	switch cfg.Driver {
	case config.EventsKafka:
		kp := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBrokers), cfg.KafkaTopicPrefix)
		return events.MultiPublisher{logPub, kp}, func() {
			if err := kp.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar writer Kafka")
			}
		}
	case config.EventsRedis:
		rp := events.NewRedisPublisher(events.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), "")
		return events.MultiPublisher{logPub, rp}, func() {
			if err := rp.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar cliente Redis")
			}
		}
	}
	return logPub, func() {}
}
