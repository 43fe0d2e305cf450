package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/openvet/clinic-api/internal/repository/postgres"
	"github.com/openvet/clinic-api/pkg/logger"
	"github.com/openvet/clinic-api/pkg/messaging/redis"
	"github.com/openvet/clinic-api/pkg/metrics"
	"github.com/openvet/clinic-api/pkg/worker"
)

// Config is read from the environment; the worker ships without a config
// file so it can run as a sidecar.
type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	RedisURL    string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`

	BatchSize     int           `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	PollInterval  time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"5s"`
	RetryAttempts int           `envconfig:"OUTBOX_RETRY_ATTEMPTS" default:"3"`
	RetryDelay    time.Duration `envconfig:"OUTBOX_RETRY_DELAY" default:"5s"`

	RetentionDays   int           `envconfig:"OUTBOX_RETENTION_DAYS" default:"7"`
	CleanupInterval time.Duration `envconfig:"OUTBOX_CLEANUP_INTERVAL" default:"1h"`

	HealthAddr string `envconfig:"HEALTH_ADDR" default:":8081"`
}

func main() {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		zlog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.NewLogger(&logger.Config{
		Level:      zerolog.InfoLevel,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})
	zlog.Logger = log.ZL

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(redis.Config{URL: cfg.RedisURL}, &log.ZL)
	if err != nil {
		log.Fatal(err, "failed to connect to Redis")
	}
	defer broker.Close()

	outboxRepo := postgres.NewOutboxRepository(db)

	processor := worker.NewOutboxProcessor(
		outboxRepo,
		broker,
		worker.OutboxProcessorConfig{
			BatchSize:       cfg.BatchSize,
			PollInterval:    cfg.PollInterval,
			RetryAttempts:   cfg.RetryAttempts,
			RetryDelay:      cfg.RetryDelay,
			RetentionDays:   cfg.RetentionDays,
			CleanupInterval: cfg.CleanupInterval,
		},
		log,
		metrics.NewMetrics("openvet", "outbox_worker"),
	)

	startHealthServer(cfg.HealthAddr, db, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down...")
		cancel()
	}()

	processor.Start(ctx)
}

func startHealthServer(addr string, db *sqlx.DB, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error(err, "health server failed")
			os.Exit(1)
		}
	}()
}
