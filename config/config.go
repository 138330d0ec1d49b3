package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort         string
	AppMode         string
	LogMode         string
	SecretsRegion   string
	SecretsPrefix   string
	BlobContainer   string
	QueueName       string
	MaxUploadMB     int
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBConnLifetime  time.Duration
	ShutdownTimeout time.Duration
}

// Secret names resolved at startup. Each can also be supplied through the
// environment as the upper-cased, underscored variant of the name.
const (
	StorageConnectionSecret    = "storage-connection-string"
	PostgresConnectionSecret   = "postgres-connection-string"
	ServiceBusConnectionSecret = "servicebus-connection-string"
)

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:         getEnv("APP_PORT", "8000"),
		AppMode:         getEnv("APP_MODE", "debug"),
		LogMode:         getEnv("LOG_MODE", "development"),
		SecretsRegion:   getEnv("SECRETS_REGION", ""),
		SecretsPrefix:   getEnv("SECRETS_PREFIX", ""),
		BlobContainer:   getEnv("BLOB_CONTAINER", "form-images"),
		QueueName:       getEnv("QUEUE_NAME", "form-submission-job"),
		MaxUploadMB:     getEnvAsInt("MAX_UPLOAD_MB", 10),
		DBMaxOpenConns:  getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:  getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		DBConnLifetime:  time.Duration(getEnvAsInt("DB_CONN_MAX_LIFETIME_MIN", 60)) * time.Minute,
		ShutdownTimeout: time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT_SEC", 5)) * time.Second,
	}
}

// MaxUploadBytes is the largest photograph accepted by POST /submit.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
