package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Geocoder GeocoderConfig
	Storage  StorageConfig
	Search   SearchConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Form     FormConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisStreamsConfig is a dedicated connection for the index event stream so
// stream consumers never compete with the cache connection pool.
type RedisStreamsConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type GeocoderConfig struct {
	BaseURL        string
	APIKey         string
	Region         string
	RequestTimeout time.Duration
}

type StorageConfig struct {
	Region         string
	Endpoint       string
	PublicBaseURL  string
	BucketFull     string
	BucketLarge    string
	BucketThumb    string
	UploadTimeout  time.Duration
	ForcePathStyle bool
}

type SearchConfig struct {
	BaseURL        string
	APIKey         string
	Collection     string
	RequestTimeout time.Duration
}

type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

type CacheConfig struct {
	LocationTTL time.Duration
}

type FormConfig struct {
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Environment-only deployments have no .env file.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			viper.Reset()
			viper.AutomaticEnv()
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Geocoder: GeocoderConfig{
			BaseURL:        viper.GetString("GEOCODER_BASE_URL"),
			APIKey:         viper.GetString("GEOCODER_API_KEY"),
			Region:         viper.GetString("GEOCODER_REGION"),
			RequestTimeout: time.Duration(viper.GetInt("GEOCODER_TIMEOUT")) * time.Second,
		},
		Storage: StorageConfig{
			Region:         viper.GetString("STORAGE_REGION"),
			Endpoint:       viper.GetString("STORAGE_ENDPOINT"),
			PublicBaseURL:  viper.GetString("STORAGE_PUBLIC_BASE_URL"),
			BucketFull:     viper.GetString("STORAGE_BUCKET_FULL"),
			BucketLarge:    viper.GetString("STORAGE_BUCKET_LARGE"),
			BucketThumb:    viper.GetString("STORAGE_BUCKET_THUMB"),
			UploadTimeout:  time.Duration(viper.GetInt("STORAGE_UPLOAD_TIMEOUT")) * time.Second,
			ForcePathStyle: viper.GetBool("STORAGE_FORCE_PATH_STYLE"),
		},
		Search: SearchConfig{
			BaseURL:        viper.GetString("SEARCH_BASE_URL"),
			APIKey:         viper.GetString("SEARCH_API_KEY"),
			Collection:     viper.GetString("SEARCH_COLLECTION"),
			RequestTimeout: time.Duration(viper.GetInt("SEARCH_TIMEOUT")) * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("AUTH_JWT_SECRET"),
			Issuer:    viper.GetString("AUTH_ISSUER"),
		},
		Cache: CacheConfig{
			LocationTTL: time.Duration(viper.GetInt("CACHE_LOCATION_TTL")) * time.Second,
		},
		Form: FormConfig{
			SessionTTL:    time.Duration(viper.GetInt("FORM_SESSION_TTL")) * time.Second,
			SweepInterval: time.Duration(viper.GetInt("FORM_SWEEP_INTERVAL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	// Set default values if not provided
	if cfg.Geocoder.BaseURL == "" {
		cfg.Geocoder.BaseURL = "https://maps.googleapis.com/maps/api"
	}
	if cfg.Geocoder.Region == "" {
		cfg.Geocoder.Region = "tr"
	}
	if cfg.Geocoder.RequestTimeout == 0 {
		cfg.Geocoder.RequestTimeout = 5 * time.Second
	}
	if cfg.Storage.UploadTimeout == 0 {
		cfg.Storage.UploadTimeout = 30 * time.Second
	}
	if cfg.Search.Collection == "" {
		cfg.Search.Collection = "listings"
	}
	if cfg.Search.RequestTimeout == 0 {
		cfg.Search.RequestTimeout = 10 * time.Second
	}
	if cfg.Cache.LocationTTL == 0 {
		cfg.Cache.LocationTTL = time.Hour
	}
	if cfg.Form.SessionTTL == 0 {
		cfg.Form.SessionTTL = 2 * time.Hour
	}
	if cfg.Form.SweepInterval == 0 {
		cfg.Form.SweepInterval = 10 * time.Minute
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "search-index-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// GetStreamsConfig derives the streams connection from the cache connection,
// one database up, unless overridden explicitly.
func (c *Config) GetStreamsConfig() *RedisStreamsConfig {
	db := viper.GetInt("REDIS_STREAMS_DB")
	if db == 0 {
		db = c.Redis.DB + 1
	}
	return &RedisStreamsConfig{
		Host:     c.Redis.Host,
		Port:     c.Redis.Port,
		Password: c.Redis.Password,
		DB:       db,
	}
}
