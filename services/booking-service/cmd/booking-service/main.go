package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/uponco/bookflow/libs/config"
	"github.com/uponco/bookflow/libs/db"
	"github.com/uponco/bookflow/libs/httpx"
	"github.com/uponco/bookflow/libs/kafkax"
	otelx "github.com/uponco/bookflow/libs/otel"
	"github.com/uponco/bookflow/libs/runtime"
	"github.com/uponco/bookflow/services/booking-service/internal/catalog"
	"github.com/uponco/bookflow/services/booking-service/internal/catcache"
	"github.com/uponco/bookflow/services/booking-service/internal/consumer"
	"github.com/uponco/bookflow/services/booking-service/internal/handlers"
	"github.com/uponco/bookflow/services/booking-service/internal/inbox"
	"github.com/uponco/bookflow/services/booking-service/internal/outbox"
	"github.com/uponco/bookflow/services/booking-service/internal/reservations"
	"github.com/uponco/bookflow/services/booking-service/internal/session"
	"github.com/uponco/bookflow/services/booking-service/internal/storage"
)

func main() {
	service := config.String("SERVICE_NAME", "booking-service")
	port, err := config.Port("PORT", "8083")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	apptRepo := storage.NewAppointmentRepository(pool)
	catalogRepo := storage.NewCatalogRepository(pool)
	outboxRepo := outbox.NewRepository(pool)
	inboxRepo := inbox.NewRepository(pool)

	catalogTTL := time.Duration(config.Int("CATALOG_CACHE_SECONDS", 300)) * time.Second
	catalogs := catcache.New(func(ctx context.Context, slug string) (*catalog.Catalog, error) {
		raw, err := catalogRepo.FetchBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, nil
		}
		return catalog.Parse(raw)
	}, catalogTTL)

	slotTTL := time.Duration(config.Int("SLOT_CACHE_SECONDS", 30)) * time.Second
	slots := catcache.NewSlots(slotTTL)

	remote, err := reservations.NewRemoteProvider(config.String("RESERVATIONS_GRPC_ADDR", ""))
	if err != nil {
		logger.Error("remote reservations init failed; using local store", "err", err)
		remote = nil
	}
	fakeReservations := config.Bool("RESERVATIONS_FAKE", false)
	providerFor := func() reservations.Provider {
		if remote != nil {
			return remote
		}
		if fakeReservations {
			return reservations.NewHashProvider()
		}
		return reservations.NewStoreProvider(apptRepo)
	}

	sessionTTL := time.Duration(config.Int("SESSION_TTL_MINUTES", 30)) * time.Minute
	sessions := session.NewManager(sessionTTL)
	defer sessions.Close()

	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	// Catalog edits land in another service; its updated event drops our
	// cached copy so new sessions see the fresh hierarchy.
	catalogTopic := strings.TrimSpace(config.String("KAFKA_CATALOG_TOPIC", "catalog.updated.v1"))
	if catalogTopic != "" && strings.TrimSpace(config.String("KAFKA_BROKERS", "")) != "" {
		catalogConsumer := consumer.New(logger, inboxRepo, consumer.Config{
			Brokers: config.String("KAFKA_BROKERS", ""),
			GroupID: config.String("KAFKA_GROUP_ID", "booking-service"),
			Topic:   catalogTopic,
		}, func(_ context.Context, msg kafka.Message) error {
			var payload struct {
				CompanySlug string `json:"company_slug"`
			}
			if err := json.Unmarshal(msg.Value, &payload); err != nil {
				logger.Error("invalid catalog event payload", "err", err, "topic", msg.Topic)
				return nil
			}
			if payload.CompanySlug == "" {
				logger.Error("catalog event missing company_slug", "topic", msg.Topic)
				return nil
			}
			catalogs.Invalidate(payload.CompanySlug)
			logger.Info("catalog cache invalidated", "company", payload.CompanySlug)
			return nil
		})
		go catalogConsumer.Run(ctx)
	}

	bookingHandler := handlers.NewBookingHandler(catalogs, slots, apptRepo, outboxRepo, providerFor, logger)
	sessionHandler := handlers.NewSessionHandler(catalogs, sessions, bookingHandler, logger)

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	mux.HandleFunc("/api/v1/public/catalog", bookingHandler.Catalog)
	mux.HandleFunc("/api/v1/public/options", bookingHandler.Options)
	mux.HandleFunc("/api/v1/public/validate", bookingHandler.Validate)
	mux.HandleFunc("/api/v1/public/slots", bookingHandler.Slots)
	mux.HandleFunc("/api/v1/public/book", bookingHandler.Book)
	mux.HandleFunc("/api/v1/public/sessions", sessionHandler.Create)
	mux.HandleFunc("/api/v1/public/sessions/{id}", sessionHandler.Get)
	mux.HandleFunc("/api/v1/public/sessions/{id}/actions", sessionHandler.Action)
	mux.HandleFunc("/api/v1/public/sessions/{id}/submit", sessionHandler.Submit)
	mux.HandleFunc("/api/v1/specialists/{id}/appointments", bookingHandler.SpecialistAppointments)

	limitPerMinute := config.Int("RATE_LIMIT_PER_MINUTE", 120)
	var rateLimitMW httpx.Middleware
	if addr := strings.TrimSpace(config.String("REDIS_ADDR", "")); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.String("REDIS_PASSWORD", ""),
			DB:       config.Int("REDIS_DB", 0),
		})
		defer func() { _ = rdb.Close() }()

		rl := httpx.NewRedisRateLimiter(rdb, limitPerMinute, time.Minute, config.String("RATE_LIMIT_PREFIX", "rl"))
		rateLimitMW = rl.Middleware(logger, config.Bool("RATE_LIMIT_FAIL_OPEN", true))
		logger.Info("rate limiting enabled (redis)", "per_minute", limitPerMinute, "redis_addr", addr)
	} else {
		rl := httpx.NewRateLimiter(limitPerMinute, time.Minute)
		rateLimitMW = rl.Middleware()
		logger.Info("rate limiting enabled (in-memory)", "per_minute", limitPerMinute)
	}

	httpHandler := httpx.Chain(mux,
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins:   parseList(config.String("CORS_ALLOWED_ORIGINS", "")),
			AllowedMethods:   parseList(config.String("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS")),
			AllowedHeaders:   parseList(config.String("CORS_ALLOWED_HEADERS", "Content-Type,X-Request-Id")),
			AllowCredentials: config.Bool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           time.Duration(config.Int("CORS_MAX_AGE_SECONDS", 600)) * time.Second,
		}),
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithBodyLimit(int64(config.Int("REQUEST_BODY_LIMIT_BYTES", 1<<20))),
		httpx.WithTimeout(time.Duration(config.Int("REQUEST_TIMEOUT_SECONDS", 10))*time.Second),
		rateLimitMW,
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "booking")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}

func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
