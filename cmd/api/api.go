package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/decomontenegro/truelabel-sub001/docs"
	"github.com/decomontenegro/truelabel-sub001/internal/auth"
	"github.com/decomontenegro/truelabel-sub001/internal/events"
	"github.com/decomontenegro/truelabel-sub001/internal/queue"
	"github.com/decomontenegro/truelabel-sub001/internal/ratelimiter"
	"github.com/decomontenegro/truelabel-sub001/internal/service"
	"github.com/decomontenegro/truelabel-sub001/internal/store/mongo"
	"github.com/decomontenegro/truelabel-sub001/internal/telemetry"
	"github.com/decomontenegro/truelabel-sub001/internal/worker"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config       config
	logger       *zap.SugaredLogger
	rateLimiter  ratelimiter.Limiter
	verifier     *auth.Verifier
	storage      *mongo.Storage
	broker       queue.Broker
	redis        *redis.Client
	hub          *events.Hub
	telemetry    *telemetry.Metrics
	queueService *service.ValidationQueueService
	assignWorker *worker.AutoAssignmentWorker
}

type config struct {
	addr          string
	env           string
	apiURL        string
	storeDriver   string
	brokerDriver  string
	rateLimiter   ratelimiter.Config
	mongo         mongoConfig
	rabbitMQ      rabbitMQConfig
	redis         redisConfig
	auth          authConfig
	autoAssign    autoAssignConfig
	sla           slaConfig
	events        events.HubConfig
	reviewerRoles []string
	seed          seedConfig
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

type redisConfig struct {
	addr       string
	password   string
	db         int
	metricsTTL time.Duration
}

type authConfig struct {
	secret string
}

type autoAssignConfig struct {
	onCreate    bool
	strategy    string
	maxAttempts int
}

type slaConfig struct {
	highHours   float64
	mediumHours float64
	normalHours float64
	lowHours    float64
	mode        string
}

// seedConfig populates the in-memory store in development.
type seedConfig struct {
	reviewers []string
	products  []string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Method(http.MethodGet, "/metrics", app.telemetry.Handler())

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.Route("/validations", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.Post("/", app.createValidationHandler)
			r.Get("/", app.listValidationsHandler)
			r.Get("/metrics", app.getValidationMetricsHandler)
			r.Get("/events", app.eventsStreamHandler)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", app.getValidationHandler)
				r.Delete("/", app.cancelValidationHandler)
				r.Get("/history", app.getValidationHistoryHandler)
				r.Post("/assign", app.assignValidationHandler)
				r.Post("/auto-assign", app.autoAssignValidationHandler)
				r.Patch("/status", app.updateValidationStatusHandler)
			})
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "Validation Queue"
	docs.SwaggerInfo.Description = "Validation queue and reviewer assignment API"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	app.hub.Start(hubCtx)

	// workers
	if app.assignWorker != nil {
		if err := app.assignWorker.Start(); err != nil {
			return fmt.Errorf("failed to start auto-assignment worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.assignWorker != nil {
			app.assignWorker.Stop()
		}

		// closes open event streams so Shutdown does not wait on them
		app.hub.Stop()

		err := srv.Shutdown(ctx)
		app.close(ctx)

		shutdown <- err
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}

func (app *application) close(ctx context.Context) {
	if app.storage != nil {
		if err := app.storage.Close(ctx); err != nil {
			app.logger.Errorw("error closing MongoDB", "error", err)
		} else {
			app.logger.Info("MongoDB connection closed gracefully")
		}
	}

	if app.broker != nil {
		if err := app.broker.Close(); err != nil {
			app.logger.Errorw("error closing broker", "error", err)
		} else {
			app.logger.Info("broker connection closed gracefully")
		}
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Errorw("error closing Redis", "error", err)
		} else {
			app.logger.Info("Redis connection closed gracefully")
		}
	}
}
