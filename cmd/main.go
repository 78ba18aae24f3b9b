package main

import (
	"context"
	"expvar"
	"log"
	"runtime"
	"time"

	"go.uber.org/zap"

	_ "github.com/driftroom/driftroom/docs"
	"github.com/driftroom/driftroom/internal/clock"
	"github.com/driftroom/driftroom/internal/infrastructure/configs"
	"github.com/driftroom/driftroom/internal/infrastructure/events"
	"github.com/driftroom/driftroom/internal/infrastructure/logging"
	"github.com/driftroom/driftroom/internal/infrastructure/messaging"
	"github.com/driftroom/driftroom/internal/infrastructure/storage"
	"github.com/driftroom/driftroom/internal/infrastructure/tracing"
	"github.com/driftroom/driftroom/internal/infrastructure/ws"
	"github.com/driftroom/driftroom/internal/persistence/db"
	"github.com/driftroom/driftroom/internal/persistence/repository"
	"github.com/driftroom/driftroom/internal/presentation/api"
	"github.com/driftroom/driftroom/internal/presentation/handler/audit"
	"github.com/driftroom/driftroom/internal/presentation/handler/health"
	"github.com/driftroom/driftroom/internal/presentation/handler/rooms"
	"github.com/driftroom/driftroom/internal/presentation/handler/uploads"
	"github.com/driftroom/driftroom/internal/registry"
	"github.com/driftroom/driftroom/internal/router"
)

const (
	serviceName = "driftroom"
)

func main() {
	tracerCfg := tracing.NewDefaultConfig(serviceName)

	sh, err := tracing.InitTracer(tracerCfg)
	if err != nil {
		log.Fatalf("Failed to initialize the tracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer sh(ctx)

	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	requestLogger := logging.NewLogger(logging.NewDefaultConfig())

	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	hub := ws.NewHub(cfg.HTTP.AllowedOrigins)

	var sink registry.EventSink
	var rabbitmq *messaging.RabbitMQ
	if cfg.RabbitMQ.Enabled {
		rabbitmq, err = messaging.NewRabbitMQ(cfg.RabbitMQ.URI)
		if err != nil {
			log.Fatal(err)
		}
		defer rabbitmq.Close()

		logger.Infow("rabbitmq connected", "uri", cfg.RabbitMQ.URI)

		sink = events.NewLifecycleSink(events.NewRoomPublisher(rabbitmq), logger)
	}

	var auditHandler *audit.Handler
	if cfg.Mongo.Enabled {
		mongoCfg := &db.MongoConfig{
			URI:               cfg.Mongo.URI,
			Database:          cfg.Mongo.Database,
			ConnectionTimeout: 10 * time.Second,
		}

		mongoClient, err := db.NewMongoClient(ctx, mongoCfg)
		if err != nil {
			log.Fatal(err)
		}
		defer db.DisconnectMongo(ctx, mongoClient)

		auditRepository := repository.NewRoomAuditLogRepository(db.GetDatabase(mongoClient, mongoCfg))
		if err := auditRepository.EnsureIndexes(ctx); err != nil {
			log.Fatal(err)
		}
		auditHandler = audit.NewHandler(auditRepository, logger)

		if rabbitmq != nil {
			auditConsumer := events.NewAuditConsumer(rabbitmq, auditRepository, logger)
			go auditConsumer.Listen()
		}
	}

	reg := registry.New(registry.Config{
		TTL:           cfg.Room.TTL,
		WarningWindow: cfg.Room.WarningWindow,
	}, clock.System(), clock.NewScheduler(), hub, sink, logger)

	rtr := router.New(reg, hub, clock.System(), logger)

	var store storage.BlobStore
	var mediaDir string
	switch cfg.Storage.Driver {
	case "s3":
		store, err = storage.NewS3Store(storage.S3Options{
			Bucket:   cfg.Storage.S3.Bucket,
			Region:   cfg.Storage.S3.Region,
			Endpoint: cfg.Storage.S3.Endpoint,
			BaseURL:  cfg.Storage.BaseURL,
		})
		if err != nil {
			log.Fatal(err)
		}
	default:
		local, err := storage.NewLocalStore(cfg.Storage.Local.Dir, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal(err)
		}
		store = local
		mediaDir = local.Dir()
	}

	roomHandler := rooms.NewHandler(reg, hub, rtr, logger)
	healthHandler := health.NewHandler()
	uploadsHandler := uploads.NewHandler(store, logger)

	app := api.NewApplication(*cfg, roomHandler, healthHandler, uploadsHandler, auditHandler, reg, logger, requestLogger, mediaDir)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	logger.Fatal(app.Run(mux))
}
