package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fuelinnovation/line-autoreply/internal/config"
	"github.com/fuelinnovation/line-autoreply/internal/content"
	"github.com/fuelinnovation/line-autoreply/internal/database"
	"github.com/fuelinnovation/line-autoreply/internal/handler"
	"github.com/fuelinnovation/line-autoreply/internal/jobs"
	"github.com/fuelinnovation/line-autoreply/internal/line"
	"github.com/fuelinnovation/line-autoreply/internal/middleware"
	"github.com/fuelinnovation/line-autoreply/internal/redis"
	"github.com/fuelinnovation/line-autoreply/internal/repository"
	"github.com/fuelinnovation/line-autoreply/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	faqEntries, err := content.LoadFAQ(cfg.FAQFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load FAQ content")
	}

	interactionRepo, closeStore, err := openInteractionStore(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.InteractionLogDriver).Msg("failed to open interaction store")
	}
	defer closeStore()

	lineClient, err := line.NewClient(
		cfg.LineChannelAccessToken,
		cfg.AdminLineUserID,
		line.WithTimeout(config.LineCallTimeout),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create LINE client")
	}

	greetingRepo := repository.NewMemoryGreetingRepository()
	calcRepo := repository.NewMemoryCalcSessionRepository()

	faqMatcher := service.NewFAQMatcher(faqEntries)
	recorder := service.NewInteractionRecorder(interactionRepo)

	var notifier service.AdminNotifier
	if cfg.AdminLineUserID != "" {
		notifier = lineClient
	}

	router, err := service.NewRouter(service.RouterConfig{
		FAQ:       faqMatcher,
		Greetings: service.NewGreetingMemory(greetingRepo, lineClient),
		Calc:      service.NewCalculatorFlow(calcRepo),
		Recorder:  recorder,
		Notifier:  notifier,
		Links: service.Links{
			SpecURL:           cfg.SpecURL,
			QuoteURL:          cfg.QuoteURL,
			CompanyProfileURL: cfg.CompanyProfileURL,
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build intent router")
	}

	log.Info().
		Int("faqEntries", faqMatcher.Len()).
		Str("interactionLog", cfg.InteractionLogDriver).
		Bool("adminNotify", notifier != nil).
		Msg("bot configured")

	signatureMiddleware := middleware.NewLineSignatureMiddleware(cfg.LineChannelSecret)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)
	webhookHandler := handler.NewWebhookHandler(router, lineClient)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)

	r.Get("/", handler.Banner)
	r.Get("/health", handler.Health)

	r.Group(func(r chi.Router) {
		r.Use(signatureMiddleware.Handler)
		r.Post("/webhook", webhookHandler.Webhook)
	})

	sweepJob := jobs.NewGreetingSweepJob(
		greetingRepo, cfg.GreetingCacheIdle(), cfg.GreetingCacheMaxEntries, config.GreetingSweepInterval,
	)
	sweepJob.Start()
	defer sweepJob.Stop()

	server := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     r,
		ReadTimeout: config.ServerReadTimeout,
		IdleTimeout: config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	// Let admin pushes and interaction writes started by the last requests land.
	router.Wait()

	log.Info().Msg("server stopped")
}

// openInteractionStore returns the configured interaction sink and a func
// releasing its connection.
func openInteractionStore(ctx context.Context, cfg *config.Config) (repository.InteractionRepository, func(), error) {
	switch cfg.InteractionLogDriver {
	case config.LogDriverPostgres:
		db, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info().Msg("database connected")
		return repository.NewPostgresInteractionRepository(db.DB), func() { db.Close() }, nil

	case config.LogDriverRedis:
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("redis connected")
		return repository.NewRedisInteractionRepository(client.Client, cfg.InteractionLogRedisKey), func() { client.Close() }, nil

	default:
		log.Info().Str("path", cfg.InteractionLogFile).Msg("logging interactions to file")
		return repository.NewFileInteractionRepository(cfg.InteractionLogFile), func() {}, nil
	}
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
