package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/SeakMengs/DocCollect/internal/env"
)

type Config struct {
	Port        string
	ENV         string
	DB          DatabaseConfig
	Minio       MinioConfig
	Classifier  ClassifierConfig
	Upload      UploadConfig
	Archive     ArchiveConfig
	RateLimiter RateLimiterConfig
}

type RateLimiterConfig struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

type DatabaseConfig struct {
	// postgres or sqlite
	DRIVER       string
	DB_HOST      string
	DB_PORT      string
	DB_DATABASE  string
	DB_USERNAME  string
	DB_PASSWORD  string
	SQLITE_PATH  string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  string
}

type MinioConfig struct {
	ENDPOINT   string
	ACCESS_KEY string
	SECRET_KEY string
	BUCKET     string
	USE_SSL    bool
}

type ClassifierConfig struct {
	OPENAI_API_KEY string
	BASE_URL       string
	MODEL          string
	// Hard limit for one classification call, upload falls back to unclassified when exceeded
	Timeout time.Duration
	// Max size of a document fetched by the classify-document function
	MaxFetchBytes int64
	// Hosts ("host" or "host:port") classify-document may download from, the storage endpoint by default
	FetchAllowedHosts []string
	// Loopback and private network addresses are refused unless set, e.g. storage on the local network
	FetchAllowPrivate bool
}

type UploadConfig struct {
	MaxFileSize int64
	// Signed download URL lifetime
	SignedURLExpiry time.Duration
}

type ArchiveConfig struct {
	// How long a generated zip stays in storage
	TTL time.Duration
	// Cron spec (with seconds) for the expired archive sweeper
	SweepSchedule string
	SweepEnabled  bool
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

func (db DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		db.DB_HOST, db.DB_USERNAME, db.DB_PASSWORD, db.DB_DATABASE, db.DB_PORT)
}

// Comma separated env value, empty entries dropped
func splitList(value string) []string {
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func GetConfig() Config {
	minioEndpoint := env.GetString("MINIO_ENDPOINT", "127.0.0.1:9000")

	return Config{
		Port: env.GetString("PORT", "8080"),
		ENV:  env.GetString("ENV", "development"),
		DB: DatabaseConfig{
			DRIVER:       env.GetString("DB_DRIVER", "postgres"),
			DB_HOST:      env.GetString("DB_HOST", "127.0.0.1"),
			DB_PORT:      env.GetString("DB_PORT", "5432"),
			DB_USERNAME:  env.GetString("DB_USERNAME", "root"),
			DB_PASSWORD:  env.GetString("DB_PASSWORD", ""),
			DB_DATABASE:  env.GetString("DB_DATABASE", "doccollect"),
			SQLITE_PATH:  env.GetString("DB_SQLITE_PATH", "doccollect.db"),
			MaxOpenConns: env.GetInt("DB_MAX_OPEN_CONNS", 30),
			MaxIdleConns: env.GetInt("DB_MAX_IDLE_CONNS", 30),
			MaxIdleTime:  env.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
		Minio: MinioConfig{
			ENDPOINT:   minioEndpoint,
			ACCESS_KEY: env.GetString("MINIO_ACCESS_KEY", ""),
			SECRET_KEY: env.GetString("MINIO_SECRET_KEY", ""),
			BUCKET:     env.GetString("MINIO_BUCKET", "doccollect"),
			USE_SSL:    env.GetBool("MINIO_USE_SSL", false),
		},
		Classifier: ClassifierConfig{
			OPENAI_API_KEY:    env.GetString("OPENAI_API_KEY", ""),
			BASE_URL:          env.GetString("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			MODEL:             env.GetString("CLASSIFIER_MODEL", "gpt-4.1-nano"),
			Timeout:           env.GetDuration("CLASSIFIER_TIMEOUT", 30*time.Second),
			MaxFetchBytes:     env.GetInt64("CLASSIFIER_MAX_FETCH_BYTES", 100<<20),
			FetchAllowedHosts: splitList(env.GetString("CLASSIFIER_FETCH_ALLOWED_HOSTS", minioEndpoint)),
			FetchAllowPrivate: env.GetBool("CLASSIFIER_FETCH_ALLOW_PRIVATE", false),
		},
		Upload: UploadConfig{
			// 100 MB per document
			MaxFileSize:     env.GetInt64("UPLOAD_MAX_FILE_SIZE", 100<<20),
			SignedURLExpiry: env.GetDuration("SIGNED_URL_EXPIRY", time.Hour),
		},
		Archive: ArchiveConfig{
			TTL:           env.GetDuration("ARCHIVE_TTL", time.Hour),
			SweepSchedule: env.GetString("ARCHIVE_SWEEP_SCHEDULE", "0 * * * * *"),
			SweepEnabled:  env.GetBool("ARCHIVE_SWEEP_ENABLED", true),
		},
		// By default if not specified, we allow 5000 requests per minute on all routes
		RateLimiter: RateLimiterConfig{
			RequestsPerTimeFrame: env.GetInt("RATE_LIMIT_REQUESTS_PER_TIME_FRAME", 5000),
			TimeFrame:            env.GetDuration("RATE_LIMIT_TIME_FRAME", time.Minute),
			Enabled:              env.GetBool("RATE_LIMIT_ENABLED", true),
		},
	}
}
