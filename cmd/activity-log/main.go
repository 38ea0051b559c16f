// Command activity-log runs the activity-log service: the HTTP API, the
// NATS consumer, and the asynchronous ingestion worker.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/coopsuite/activity-log-ms/internal/api"
	"github.com/coopsuite/activity-log-ms/internal/config"
	"github.com/coopsuite/activity-log-ms/internal/consumer"
	"github.com/coopsuite/activity-log-ms/internal/db"
	"github.com/coopsuite/activity-log-ms/internal/db/migrations"
	"github.com/coopsuite/activity-log-ms/internal/dbpool"
	"github.com/coopsuite/activity-log-ms/internal/service"
	"github.com/coopsuite/activity-log-ms/internal/store"
)

// version is set via -ldflags at build time.
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("activity-log service exited")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return err
	}

	activityStore := store.NewActivityStore(store.Base{Pool: pool, Log: log})
	activityService := service.NewActivityService(activityStore, log)
	worker := service.NewIngestWorker(activityService, log, cfg.IngestQueueSize)

	nc, err := nats.Connect(cfg.NATSServers(),
		nats.Name("activity-log-ms"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return err
	}
	defer nc.Close()

	cons := consumer.New(nc, activityService, worker, log)
	if err := cons.Start(); err != nil {
		return err
	}

	router := api.NewRouter(&api.RouterDeps{
		Log:         log,
		Pool:        pool,
		Querier:     activityService,
		Sink:        worker,
		CORSOrigins: cfg.CORSOrigins,
		Version:     version,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		worker.Run(gctx)

		return nil
	})

	g.Go(func() error {
		return cons.Run(gctx)
	})

	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr":    cfg.Addr(),
			"version": version,
		}).Info("activity-log service listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("shutdown complete")

	return nil
}
