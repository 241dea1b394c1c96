package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Addr          string
	DatabaseURL   string
	YouTubeAPIKey string
	JWTSecret     string
	LogLevel      string

	HTTPSCertFile string
	HTTPSKeyFile  string

	Blob BlobConfig
}

// BlobConfig selects the thumbnail storage backend. When Bucket is empty
// the filesystem backend rooted at Dir is used instead of S3.
type BlobConfig struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Dir             string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("Unable to load .env file: %w", err)
	}

	cfg := &Config{
		Addr:          getEnv("VIDEOTECA_ADDR", "localhost:8194"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		YouTubeAPIKey: os.Getenv("YOUTUBE_API_KEY"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		LogLevel:      getEnv("LOG_LEVEL", "debug"),
		HTTPSCertFile: os.Getenv("HTTPS_CERT_FILE"),
		HTTPSKeyFile:  os.Getenv("HTTPS_KEY_FILE"),
		Blob: BlobConfig{
			Bucket:          os.Getenv("S3_THUMBNAIL_BUCKET"),
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			Dir:             getEnv("THUMBNAIL_DIR", ".thumbnails"),
		},
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("Required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
