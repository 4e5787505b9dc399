// Package config loads server settings from the environment with
// development defaults.
package config

import (
	"os"
	"strconv"
)

// Config holds every runtime setting for the server.
type Config struct {
	Port      string
	DBPath    string
	StaticDir string

	CORSOrigin    string
	ModerationURL string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioPublicURL string
	MinioUseSSL    bool
}

// Load reads the configuration from environment variables, falling back
// to defaults suitable for local development.
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8080"),
		DBPath:    getEnv("DB_PATH", "./data/badger"),
		StaticDir: getEnv("STATIC_DIR", "./static"),

		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:3000"),
		ModerationURL: getEnv("MODERATION_URL", "http://localhost:5001/score"),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getEnv("MINIO_BUCKET", "bulletin-images"),
		MinioPublicURL: getEnv("MINIO_PUBLIC_URL", "http://localhost:9000"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
