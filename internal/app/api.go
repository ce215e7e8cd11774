package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/mapgrid/tilefetch/internal/infrastructure/http/v1"
	"github.com/mapgrid/tilefetch/internal/infrastructure/http/v1/handler"
	"github.com/mapgrid/tilefetch/internal/notify"
	"github.com/mapgrid/tilefetch/internal/projection"
	cacherepo "github.com/mapgrid/tilefetch/internal/repository/cache"
	"github.com/mapgrid/tilefetch/internal/source"
	"github.com/mapgrid/tilefetch/internal/usecase"
	"github.com/mapgrid/tilefetch/pkg/config"
	"github.com/mapgrid/tilefetch/pkg/logger"
	"github.com/mapgrid/tilefetch/pkg/telemetry"
)

func Run() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	l := logger.NewZapLogger(cfg.Logger.Level)

	l.Info("starting tilefetch",
		"port", cfg.HTTP.Server.Port,
		"source", cfg.Source.Name,
		"layers", cfg.Source.LayerURLs,
		"cache_backend", cfg.Cache.Backend,
		"notify_backend", cfg.Notify.Backend,
		"telemetry", cfg.Telemetry.Enabled,
	)

	if cfg.Telemetry.Enabled {
		shutdownTelemetry, err := telemetry.InitTracer(telemetry.Config{
			ServiceName:    cfg.Telemetry.ServiceName,
			ServiceVersion: cfg.Telemetry.ServiceVersion,
			Environment:    cfg.Telemetry.Environment,
			OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		}, l)
		if err != nil {
			l.Fatal("failed to initialize telemetry", "error", err)
		}
		defer func() {
			if err := shutdownTelemetry(context.Background()); err != nil {
				l.Error("failed to shutdown telemetry", "error", err)
			}
		}()
	}

	tileCache, err := cacherepo.New(
		cfg.Cache.Backend,
		cfg.Cache.SQLitePath,
		cfg.Cache.FilesystemDir,
		cacherepo.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		},
		l,
	)
	if err != nil {
		l.Fatal("failed to initialize cache", "backend", cfg.Cache.Backend, "error", err)
	}

	notifier, closeNotifier, err := newNotifier(cfg, l)
	if err != nil {
		l.Fatal("failed to initialize notifier", "backend", cfg.Notify.Backend, "error", err)
	}
	defer closeNotifier()

	layers := make([]source.Resolver, 0, len(cfg.Source.LayerURLs))
	for _, url := range cfg.Source.LayerURLs {
		layers = append(layers, source.URLResolver{BaseURL: url})
	}

	src, err := source.New(source.Options{
		Resolver:   source.Layers(layers...),
		Transport:  source.NewHTTPTransport(cfg.Source.UserAgent),
		Cache:      cacherepo.NewGateway(tileCache),
		Projection: projection.New(cfg.Source.MinZoom, cfg.Source.MaxZoom),
		Notifier:   notifier,
		Logger:     l,
		CacheKey:   cfg.Source.Name,
		RetryCount: cfg.Source.RetryCount,
		Timeout:    cfg.Source.RequestTimeout,
		Cacheable:  cfg.Source.Cacheable,
		Hidden:     cfg.Source.Hidden,
	})
	if err != nil {
		l.Fatal("failed to initialize tile source", "error", err)
	}

	tileUseCase := usecase.NewTileUseCase(src, l)

	h := handler.NewHandler(tileUseCase)

	router := v1.NewRouter(h, l, cfg.Telemetry.Enabled)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.Server.ReadTimeout,
		WriteTimeout: cfg.HTTP.Server.WriteTimeout,
		IdleTimeout:  cfg.HTTP.Server.IdleTimeout,
	}

	go func() {
		l.Info("starting http server", "port", cfg.HTTP.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		l.Fatal("server forced to shutdown", "error", err)
	}

	l.Info("server stopped")
}

func newNotifier(cfg *config.Config, l logger.Logger) (source.Notifier, func(), error) {
	switch cfg.Notify.Backend {
	case "bus":
		bus := notify.NewBus(cfg.Notify.BufferSize)
		bus.Subscribe(func(ev notify.Event) {
			l.Debug("tile event", "event", ev.Name, "key", ev.TileKey)
		})
		return bus, bus.Close, nil
	case "redis":
		bus, err := notify.NewRedisBus(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Notify.RedisChannel,
			l,
		)
		if err != nil {
			return nil, nil, err
		}
		return bus, func() { _ = bus.Close() }, nil
	default:
		return nopNotifier{}, func() {}, nil
	}
}

type nopNotifier struct{}

func (nopNotifier) Publish(string, uint64) {}
