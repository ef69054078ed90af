package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL"`

	Server   ServerConfig   `envPrefix:"SERVER_"`
	Database DatabaseConfig `envPrefix:"DB_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Auth     AuthConfig     `envPrefix:"AUTH_"`
	RabbitMQ RabbitMQConfig `envPrefix:"RABBITMQ_"`
	Storage  StorageConfig  `envPrefix:"STORAGE_"`
	Listing  ListingConfig  `envPrefix:"LISTING_"`
	Asset    AssetConfig    `envPrefix:"ASSET_"`
	Internal InternalConfig `envPrefix:"INTERNAL_"`
	Backend  BackendConfig  `envPrefix:"BACKEND_"`
}

type ServerConfig struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
}

type DatabaseConfig struct {
	Host            string        `env:"HOST" envDefault:"localhost"`
	Port            int           `env:"PORT" envDefault:"3306"`
	User            string        `env:"USER" envDefault:"root"`
	Password        string        `env:"PASSWORD"`
	Name            string        `env:"NAME" envDefault:"rentals"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
}

type RedisConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET" envDefault:"change-me"`
	JWTExpiration  time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`
	SessionExpTime time.Duration `env:"SESSION_EXP_TIME" envDefault:"24h"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	// empty authorize and token URLs fall back to Google's published endpoints
	GoogleAuthorizeURL string        `env:"GOOGLE_AUTHORIZE_URL"`
	GoogleTokenURL     string        `env:"GOOGLE_TOKEN_URL"`
	GoogleUserInfoURL  string        `env:"GOOGLE_USERINFO_URL" envDefault:"https://openidconnect.googleapis.com/v1/userinfo"`
	GoogleCallbackURL  string        `env:"GOOGLE_CALLBACK_URL" envDefault:"http://localhost:8080/auth/oauth/google/callback"`
	OAuthStateTTL      time.Duration `env:"OAUTH_STATE_TTL" envDefault:"10m"`
}

type RabbitMQConfig struct {
	Enabled  bool   `env:"ENABLED" envDefault:"false"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"5672"`
	User     string `env:"USER" envDefault:"guest"`
	Password string `env:"PASSWORD" envDefault:"guest"`
}

type StorageConfig struct {
	Driver        string `env:"DRIVER" envDefault:"s3"`
	Endpoint      string `env:"ENDPOINT"`
	Region        string `env:"REGION" envDefault:"us-east-1"`
	AccessKey     string `env:"ACCESS_KEY"`
	SecretKey     string `env:"SECRET_KEY"`
	PathStyle     bool   `env:"PATH_STYLE" envDefault:"true"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:9000"`
	MaxPhotoBytes int64  `env:"MAX_PHOTO_BYTES" envDefault:"10485760"`
	// memory driver only: photos are served by this process under /storage
	MemoryBaseURL string `env:"MEMORY_BASE_URL" envDefault:"http://localhost:8080/storage"`
}

type ListingConfig struct {
	FeedCacheTTL time.Duration `env:"FEED_CACHE_TTL" envDefault:"5m"`
}

type AssetConfig struct {
	UpstreamURL string        `env:"UPSTREAM_URL" envDefault:"http://localhost:5173"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"0"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type InternalConfig struct {
	APIKey string `env:"API_KEY" envDefault:"internal-secret"`
	APIURL string `env:"API_URL" envDefault:"http://localhost:8080"`
	// wait before a failed feed refresh goes back on the queue
	RetryDelay time.Duration `env:"RETRY_DELAY" envDefault:"5s"`
}

// BackendConfig configures the remote client used by the command line front end.
type BackendConfig struct {
	BaseURL        string        `env:"BASE_URL" envDefault:"http://localhost:8080"`
	Timeout        time.Duration `env:"TIMEOUT" envDefault:"10s"`
	BreakerTimeout time.Duration `env:"BREAKER_TIMEOUT" envDefault:"30s"`
}

// Load reads .env when present and parses the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC&clientFoundRows=true",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}

func (c *Config) GetRabbitMQDSN() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}
