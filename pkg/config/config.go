package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type (
	Config struct {
		HTTP      HTTP      `envPrefix:"HTTP_"`
		Logger    Logger    `envPrefix:"LOGGER_"`
		Telemetry Telemetry `envPrefix:"TELEMETRY_"`
		Source    Source    `envPrefix:"SOURCE_"`
		Cache     Cache     `envPrefix:"CACHE_"`
		Redis     Redis     `envPrefix:"REDIS_"`
		Notify    Notify    `envPrefix:"NOTIFY_"`
	}

	HTTP struct {
		Server  Server        `envPrefix:"SERVER_"`
		Timeout time.Duration `envPrefix:"TIMEOUT" envDefault:"10s"`
	}

	Server struct {
		Port         string        `env:"PORT,required"`
		ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
		WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
		IdleTimeout  time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	}

	Logger struct {
		Level string `env:"LEVEL" envDefault:"info"`
	}

	Telemetry struct {
		Enabled        bool   `env:"ENABLED" envDefault:"false"`
		ServiceName    string `env:"SERVICE_NAME" envDefault:"tilefetch"`
		ServiceVersion string `env:"SERVICE_VERSION" envDefault:"1.0.0"`
		Environment    string `env:"ENVIRONMENT" envDefault:"production"`
		OTLPEndpoint   string `env:"OTLP_ENDPOINT" envDefault:"otel-collector.observability.svc.cluster.local:4317"`
	}

	// Source configures the tile source pipeline. LayerURLs holds one
	// base URL per layer; with more than one the layers are fetched
	// concurrently and composited bottom-up in the listed order.
	Source struct {
		Name           string        `env:"NAME" envDefault:"osm"`
		LayerURLs      []string      `env:"LAYER_URLS" envSeparator:"," envDefault:"https://tile.openstreetmap.org"`
		UserAgent      string        `env:"USER_AGENT" envDefault:"tilefetch/1.0"`
		RetryCount     int           `env:"RETRY_COUNT" envDefault:"3" validate:"gte=1"`
		RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s" validate:"gt=0"`
		Cacheable      bool          `env:"CACHEABLE" envDefault:"true"`
		Hidden         bool          `env:"HIDDEN" envDefault:"false"`
		MinZoom        int           `env:"MIN_ZOOM" envDefault:"0" validate:"gte=0"`
		MaxZoom        int           `env:"MAX_ZOOM" envDefault:"19" validate:"gtefield=MinZoom"`
	}

	Cache struct {
		Backend       string `env:"BACKEND" envDefault:"map" validate:"oneof=map redis sqlite filesystem disabled"`
		SQLitePath    string `env:"SQLITE_PATH" envDefault:"cache.db"`
		FilesystemDir string `env:"FILESYSTEM_DIR" envDefault:"./tiles"`
	}

	Redis struct {
		Addr string `env:"ADDR" envDefault:"localhost:6379"`
		// Password never appears in marshaled or logged output.
		Password string        `env:"PASSWORD" envDefault:"" json:"-"`
		DB       int           `env:"DB" envDefault:"0"`
		TTL      time.Duration `env:"TTL" envDefault:"24h"`
	}

	Notify struct {
		Backend      string `env:"BACKEND" envDefault:"bus" validate:"oneof=bus redis none"`
		BufferSize   int    `env:"BUFFER_SIZE" envDefault:"64"`
		RedisChannel string `env:"REDIS_CHANNEL" envDefault:"tilefetch.events"`
	}
)

func New() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Printf("NOTICE: .env file not found or cannot be loaded: %v\n", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
