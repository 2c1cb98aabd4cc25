package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"volunteerhub/internal/audit"
	"volunteerhub/internal/platform/config"
	"volunteerhub/internal/platform/httpserver"
	"volunteerhub/internal/platform/logger"
	platformmetrics "volunteerhub/internal/platform/metrics"
	platformredis "volunteerhub/internal/platform/redis"
	"volunteerhub/internal/rsvp"
	rsvphandler "volunteerhub/internal/rsvp/handler"
	rsvpmetrics "volunteerhub/internal/rsvp/metrics"
	"volunteerhub/internal/session"
	"volunteerhub/internal/volunteer"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores. Postgres is the system of record; without a DATABASE_URL the
	// server runs on in-memory stores, which is only useful for local work.
	var (
		rsvpStore      rsvp.Store
		volunteerStore volunteer.Store
		pool           *pgxpool.Pool
	)
	if cfg.PostgresURL != "" {
		var err error
		pool, err = pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("connect postgres", "error", err.Error())
			os.Exit(1)
		}
		defer pool.Close()

		pgRSVP := rsvp.NewPostgresStore(pool)
		pgVolunteers := volunteer.NewPostgresStore(pool)
		if err := pgRSVP.EnsureSchema(ctx); err != nil {
			log.Error("ensure schema", "error", err.Error())
			os.Exit(1)
		}
		if err := pgVolunteers.EnsureSchema(ctx); err != nil {
			log.Error("ensure schema", "error", err.Error())
			os.Exit(1)
		}
		rsvpStore = pgRSVP
		volunteerStore = pgVolunteers
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		rsvpStore = rsvp.NewInMemoryStore()
		volunteerStore = volunteer.NewInMemoryStore()
	}

	// Redis backs the session store and the attendance count cache; both
	// degrade gracefully when it is absent.
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		var err error
		redisClient, err = platformredis.New(ctx, cfg.Redis)
		if err != nil {
			log.Error("connect redis", "error", err.Error())
			os.Exit(1)
		}
		defer redisClient.Close()
	}

	// Sessions.
	tokens := session.NewTokenService(cfg.JWTSigningKey, "volunteerhub")
	var sessionStore session.Store
	if redisClient != nil {
		sessionStore = session.NewRedisStore(redisClient)
	} else {
		sessionStore = session.NewInMemoryStore()
	}
	sessions := session.NewService(tokens, sessionStore, log, cfg.SessionTTL)

	// Audit trail. Kafka when brokers are configured, in-process otherwise.
	auditor := audit.NewPublisher(log, 1024)
	var sink audit.Sink
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error("connect kafka", "error", err.Error())
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
	} else {
		log.Warn("KAFKA_BROKERS not set, audit events stay in process")
		sink = audit.NewMemorySink()
	}
	worker := audit.NewWorker(sink, auditor.Inbox(), log)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err.Error())
		}
	}()

	// Registration core.
	m := platformmetrics.New()
	countCache := rsvp.NewCountCache(redisClient, 30*time.Second, log)
	service := rsvp.NewService(rsvpStore, countCache, auditor, log, rsvpmetrics.New())
	handler := rsvphandler.New(service, sessions, volunteerStore, sessions, log, m)

	router := chi.NewRouter()
	handler.Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/health", healthHandler(pool, redisClient))

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting volunteerhub", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	shutdown(srv, workerDone, log)
}

// healthHandler reports reachability of the backing stores. A missing
// dependency is reported but does not fail the check; an unreachable
// configured one does.
func healthHandler(pool *pgxpool.Pool, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"status": "ok", "postgres": "not configured", "redis": "not configured"}
		healthy := true
		if pool != nil {
			status["postgres"] = "ok"
			if err := pool.Ping(ctx); err != nil {
				status["postgres"] = "unreachable"
				healthy = false
			}
		}
		if redisClient != nil {
			status["redis"] = "ok"
			if err := redisClient.Ping(ctx).Err(); err != nil {
				status["redis"] = "unreachable"
				healthy = false
			}
		}

		code := http.StatusOK
		if !healthy {
			status["status"] = "degraded"
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(status)
	}
}

func shutdown(srv *http.Server, workerDone <-chan struct{}, log *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
	}
	select {
	case <-workerDone:
	case <-ctx.Done():
		log.Warn("audit worker did not drain in time")
	}
	log.Info("volunteerhub stopped")
}
