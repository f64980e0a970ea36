package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Store backends selectable through DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Media backends selectable through MEDIA_DRIVER.
const (
	MediaLocal = "local"
	MediaMinIO = "minio"
)

const devJWTSecret = "dev_secret"

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Mongo    MongoConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Media    MediaConfig
	MinIO    MinIOConfig
	Metrics  MetricsConfig
}

type DatabaseConfig struct {
	Driver         string
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxOpenConns   int
	MaxIdleConns   int
	ConnectTimeout time.Duration
	QueryTimeout   time.Duration
	ConnectRetries int
}

// MongoConfig points at the document store used when DB_DRIVER=mongo.
type MongoConfig struct {
	URI      string
	Database string
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// MediaConfig controls where uploaded images land and how they are addressed.
type MediaConfig struct {
	Driver        string
	UploadsDir    string
	PublicBaseURL string
	MaxFileSize   int64
}

// MinIOConfig configures the S3-compatible object storage backend.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Folder    string
	PublicURL string
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = strings.TrimRight(v.GetString("API_PREFIX"), "/")

	cfg.Database = DatabaseConfig{
		Driver:         strings.ToLower(v.GetString("DB_DRIVER")),
		Host:           v.GetString("DB_HOST"),
		Port:           v.GetInt("DB_PORT"),
		User:           v.GetString("DB_USER"),
		Password:       v.GetString("DB_PASSWORD"),
		Name:           v.GetString("DB_NAME"),
		SSLMode:        v.GetString("DB_SSL_MODE"),
		MaxOpenConns:   v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:   v.GetInt("DB_MAX_IDLE_CONNS"),
		ConnectTimeout: parseDuration(v.GetString("DB_CONNECT_TIMEOUT"), 10*time.Second),
		QueryTimeout:   parseDuration(v.GetString("DB_QUERY_TIMEOUT"), 10*time.Second),
		ConnectRetries: v.GetInt("DB_CONNECT_RETRIES"),
	}

	cfg.Mongo = MongoConfig{
		URI:      v.GetString("MONGO_URI"),
		Database: v.GetString("MONGO_DATABASE"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 7*24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	origins := splitAndTrim(v.GetString("ALLOWED_ORIGINS"))
	if len(origins) == 0 {
		origins = splitAndTrim(v.GetString("CLIENT_URL"))
	}
	cfg.CORS = CORSConfig{AllowedOrigins: origins}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	maxFileSize := v.GetInt64("MEDIA_MAX_FILE_SIZE")
	if maxFileSize <= 0 {
		maxFileSize = 3 * 1024 * 1024
	}
	cfg.Media = MediaConfig{
		Driver:        strings.ToLower(v.GetString("MEDIA_DRIVER")),
		UploadsDir:    v.GetString("UPLOADS_DIR"),
		PublicBaseURL: strings.TrimRight(v.GetString("MEDIA_PUBLIC_BASE_URL"), "/"),
		MaxFileSize:   maxFileSize,
	}

	cfg.MinIO = MinIOConfig{
		Endpoint:  v.GetString("MINIO_ENDPOINT"),
		AccessKey: v.GetString("MINIO_ACCESS_KEY"),
		SecretKey: v.GetString("MINIO_SECRET_KEY"),
		Bucket:    v.GetString("MINIO_BUCKET"),
		UseSSL:    v.GetBool("MINIO_USE_SSL"),
		Folder:    strings.Trim(v.GetString("MINIO_FOLDER"), "/"),
		PublicURL: strings.TrimRight(v.GetString("MINIO_PUBLIC_URL"), "/"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	return cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Database.Driver == DriverMongo && c.Mongo.URI == "" {
		return errors.New("MONGO_URI is required when DB_DRIVER=mongo")
	}
	switch c.Media.Driver {
	case MediaLocal:
	case MediaMinIO:
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			return errors.New("MINIO_ENDPOINT and MINIO_BUCKET are required when MEDIA_DRIVER=minio")
		}
	default:
		return fmt.Errorf("unsupported MEDIA_DRIVER %q", c.Media.Driver)
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Env == EnvProduction && c.JWT.Secret == devJWTSecret {
		return errors.New("JWT_SECRET must be changed in production")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 5000)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "startupathon")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONNECT_TIMEOUT", "10s")
	v.SetDefault("DB_QUERY_TIMEOUT", "10s")
	v.SetDefault("DB_CONNECT_RETRIES", 5)

	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DATABASE", "startupthonDB")

	v.SetDefault("JWT_SECRET", devJWTSecret)
	v.SetDefault("JWT_EXPIRATION", "168h")
	v.SetDefault("JWT_ISSUER", "startupathon-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("CLIENT_URL", "http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("MEDIA_DRIVER", MediaLocal)
	v.SetDefault("UPLOADS_DIR", "./uploads")
	v.SetDefault("MEDIA_PUBLIC_BASE_URL", "http://localhost:5000")
	v.SetDefault("MEDIA_MAX_FILE_SIZE", 3*1024*1024)

	v.SetDefault("MINIO_ENDPOINT", "")
	v.SetDefault("MINIO_ACCESS_KEY", "")
	v.SetDefault("MINIO_SECRET_KEY", "")
	v.SetDefault("MINIO_BUCKET", "startupathon")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MINIO_FOLDER", "startupathon")
	v.SetDefault("MINIO_PUBLIC_URL", "")

	v.SetDefault("ENABLE_METRICS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
