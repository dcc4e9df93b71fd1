// Package server boots the full application: config, Mongo, storage, the
// WebSocket hub, queue workers and the HTTP server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/huyvng/storedash/app/jobs"
	"github.com/huyvng/storedash/app/routes"
	"github.com/huyvng/storedash/app/services"
	"github.com/huyvng/storedash/config"
	"github.com/huyvng/storedash/pkg/database"
	"github.com/huyvng/storedash/pkg/event"
	"github.com/huyvng/storedash/pkg/logger"
	"github.com/huyvng/storedash/pkg/metrics"
	"github.com/huyvng/storedash/pkg/middleware"
	"github.com/huyvng/storedash/pkg/queue"
	"github.com/huyvng/storedash/pkg/reqid"
	"github.com/huyvng/storedash/pkg/router"
	"github.com/huyvng/storedash/pkg/storage"
	"github.com/huyvng/storedash/pkg/ws"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Start runs the API server until SIGINT/SIGTERM, then shuts down
// gracefully.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if config.LogMongo() {
		mh, err := logger.NewMongoHandler(config.MongoURI(), config.MongoDB(), "logs")
		if err != nil {
			logger.Warn("log sink disabled", "error", err)
		} else {
			defer mh.Close()
			logger.L = slog.New(logger.NewMultiHandler(logger.L.Handler(), mh))
			slog.SetDefault(logger.L)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx)
	if err != nil {
		return err
	}
	defer database.Disconnect(context.Background(), db) //nolint:errcheck

	if err := database.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	storage.Connect()

	hub := ws.NewHub()
	go hub.Run()

	StartQueue(ctx, db)
	jobs.Configure(hub)

	event.Listen(services.EventLowStock, func(payload interface{}) {
		if alert, ok := payload.(services.LowStockAlert); ok {
			logger.Warn("inventory: low stock",
				"product", alert.ProductID, "name", alert.Name, "remaining", alert.Remaining)
		}
	})

	r := router.New()
	r.Use(reqid.Middleware())
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))

	routes.RegisterAPI(r, db, hub)
	r.Get("/metrics", "metrics", metrics.Handler())
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(config.StorageLocalRoot()))))

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http: listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("http: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// StartQueue configures the queue driver from config, persists failed jobs
// to Mongo, and launches the worker pool.
func StartQueue(ctx context.Context, db *mongo.Database) {
	if config.QueueDriver() == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr(),
			Password: config.RedisPassword(),
		})
		queue.SetDriver(queue.NewRedisDriver(rdb))
	}
	queue.UseDB(db)
	queue.StartWorkers(ctx, config.QueueWorkers())
}
