package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Gemini   GeminiConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	MaxBodySize int64
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// StorageConfig points at an S3-compatible object store (R2, MinIO, S3).
type StorageConfig struct {
	AccountID string
	AccessKey string
	SecretKey string
	Bucket    string
	// PublicBaseURL is the externally reachable prefix for uploaded objects.
	// When empty, object URLs are built from the account endpoint and bucket.
	PublicBaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment values.")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8000"),
			Env:         getEnv("ENV", "development"),
			MaxBodySize: getEnvAsInt64("MAX_BODY_SIZE", 52428800),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "hr_first"),
		},
		Storage: StorageConfig{
			AccountID:     getEnv("STORAGE_ACCOUNT_ID", ""),
			AccessKey:     getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey:     getEnv("STORAGE_SECRET_KEY", ""),
			Bucket:        getEnv("STORAGE_BUCKET", ""),
			PublicBaseURL: getEnv("STORAGE_PUBLIC_URL", ""),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects a config missing any external-service credential. These
// have no sensible default and the process must not come up without them.
func (c *Config) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"GEMINI_API_KEY", c.Gemini.APIKey},
		{"STORAGE_ACCOUNT_ID", c.Storage.AccountID},
		{"STORAGE_ACCESS_KEY", c.Storage.AccessKey},
		{"STORAGE_SECRET_KEY", c.Storage.SecretKey},
		{"STORAGE_BUCKET", c.Storage.Bucket},
	}

	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("missing required environment variable %s", r.name)
		}
	}

	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}
