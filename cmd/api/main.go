package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/joshua-takyi/eventscape/internal/config"
	"github.com/joshua-takyi/eventscape/internal/connect"
	"github.com/joshua-takyi/eventscape/internal/container"
	"github.com/joshua-takyi/eventscape/internal/geocode"
	"github.com/joshua-takyi/eventscape/internal/helpers"
	"github.com/joshua-takyi/eventscape/internal/realtime"
	"github.com/joshua-takyi/eventscape/internal/routes"
	"github.com/joshua-takyi/eventscape/internal/services"
	"github.com/thejerf/suture/v4"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	logger.Info("Starting Eventscape API server", "environment", cfg.Environment)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server exited")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := connect.MongoDBConnect(ctx, cfg.MongoURI())
	if err != nil {
		return err
	}
	defer func() {
		if err := connect.MongoDBDisconnect(mongoClient); err != nil {
			logger.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()
	logger.Info("Connected to MongoDB successfully")

	rdb := connect.RedisConnect(ctx, cfg.RedisURL, logger)
	if rdb != nil {
		defer rdb.Close()
		logger.Info("Connected to Redis successfully")
	}

	amqpConn, err := connect.AMQPConnect(cfg.AMQPURL)
	if err != nil {
		return err
	}
	if amqpConn != nil {
		defer amqpConn.Close()
		logger.Info("Connected to RabbitMQ successfully")
	}

	tokens, err := helpers.NewTokenValidator(ctx, cfg.JWKSURL, cfg.JWTSecret)
	if err != nil {
		return err
	}
	defer tokens.Close()

	geocoder := container.NewGeocoder(geocode.Config{
		APIKey:   cfg.GeocodingAPIKey,
		BaseURL:  cfg.GeocodingBaseURL,
		Timeout:  cfg.GeocodingTimeout,
		Rate:     cfg.GeocodingRate,
		Burst:    cfg.GeocodingBurst,
		CacheTTL: cfg.GeocodingCacheTTL,
	}, rdb, logger)

	appContainer := container.NewContainer(logger, container.Clients{
		Mongo:    mongoClient,
		AMQP:     amqpConn,
		Geocoder: geocoder,
		Tokens:   tokens,
	}, container.Options{
		DatabaseName: cfg.MongoDBName,
		AMQPQueue:    cfg.AMQPQueue,
		Discovery: services.DiscoveryConfig{
			DefaultLimit: cfg.DefaultPageLimit,
			MaxLimit:     cfg.MaxPageLimit,
		},
		CORSOrigins: cfg.CORSOrigins,
	})

	if err := appContainer.Indexes.EnsureIndexes(ctx); err != nil {
		return err
	}
	logger.Info("Indexes ensured")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     routes.SetupRoutes(appContainer),
		ReadTimeout: 15 * time.Second,
		// no WriteTimeout: /api/v1/stream holds connections open
		IdleTimeout: 60 * time.Second,
		// streams end when a shutdown signal arrives
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	var supervised []suture.Service
	if cfg.ChangeStreamEnabled {
		supervised = append(supervised, appContainer.Listener)
	}
	supervisor := realtime.NewSupervisor(logger, realtime.SupervisorConfig{ShutdownTimeout: cfg.ShutdownTimeout}, supervised...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		err := supervisor.Serve(gctx)
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, suture.ErrTerminateSupervisorTree) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Server is shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler
	level := parseLevel(cfg.LogLevel)

	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
