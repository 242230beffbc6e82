package main

import (
	"alcyxob/lifelog-app/internal/api"
	"alcyxob/lifelog-app/internal/config"
	"alcyxob/lifelog-app/internal/logging"
	"alcyxob/lifelog-app/internal/metrics"
	"alcyxob/lifelog-app/internal/repository"
	"alcyxob/lifelog-app/internal/repository/memory"
	"alcyxob/lifelog-app/internal/repository/mongo"
	"alcyxob/lifelog-app/internal/service"
	"alcyxob/lifelog-app/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// @title Lifelog API
// @version 1.0
// @description Personal dashboard for habits, nutrition, workouts, goals, health metrics, screen time and todos.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.WithError(err).Fatal("could not load config")
	}
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("invalid config")
	}

	logging.Setup(logging.Params{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.ToStdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	logrus.WithFields(logrus.Fields{
		"driver":   cfg.Database.Driver,
		"s3":       cfg.S3.Enabled,
		"timezone": cfg.App.Timezone,
	}).Info("starting lifelog server")

	loc, err := cfg.App.Location()
	if err != nil {
		logrus.WithError(err).Fatal("could not load timezone")
	}

	// --- Store ---
	store, closeStore, err := openStore(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("could not open store")
	}
	defer closeStore()

	// --- Export storage ---
	var files storage.ObjectStorage = storage.Disabled{}
	if cfg.S3.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		files, err = storage.NewS3Storage(ctx, cfg.S3)
		cancel()
		if err != nil {
			logrus.WithError(err).Fatal("failed to initialize S3 storage")
		}
	} else {
		logrus.Info("S3 disabled, export uploads will answer 503")
	}

	// --- Services ---
	metricsManager := metrics.NewManager("lifelog", "server", prometheus.NewRegistry())
	services := service.New(store, files, service.Options{
		Calendar:      service.NewCalendar(loc),
		PresignExpiry: cfg.S3.PresignExpiry,
		Metrics:       metricsManager,
	})

	// --- HTTP ---
	gin.SetMode(cfg.Server.GinMode)
	router := api.NewRouter(cfg.App.DefaultUserID, services, metricsManager)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logrus.WithField("address", cfg.Server.Address).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("listen and serve")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logrus.WithError(err).Error("server forced to shutdown")
	}
	logrus.Info("server exiting")
}

// openStore returns the configured repository set and a func releasing it.
func openStore(cfg config.DatabaseConfig) (*repository.Store, func(), error) {
	if cfg.Driver != config.DriverMongo {
		logrus.Info("using in-memory store")
		return memory.NewStore(), func() {}, nil
	}

	client, err := mongo.ConnectDB(cfg.URI)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		logrus.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(client); err != nil {
			logrus.WithError(err).Error("failed to disconnect MongoDB")
		}
	}

	db := client.Database(cfg.Name)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		closeFn()
		return nil, nil, err
	}
	return mongo.NewStore(db), closeFn, nil
}
