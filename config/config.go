// Package config reads the service configuration from the environment,
// loading a local .env file first when present.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	MongoURI string
	Database string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Region    string
	S3UseSSL    bool

	ModerationMinConfidence float32

	JWTSecret         string
	AdminPasswordHash string

	TicketmasterAPIKey string
}

func Load() Config {
	// Missing .env is fine; deployments inject real environment variables.
	_ = godotenv.Load()

	minConfidence := float32(80)
	if raw := os.Getenv("MODERATION_MIN_CONFIDENCE"); raw != "" {
		if f, err := strconv.ParseFloat(raw, 32); err == nil {
			minConfidence = float32(f)
		}
	}

	useSSL := true
	if raw := os.Getenv("S3_USE_SSL"); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			useSSL = b
		}
	}

	return Config{
		Port:     getenv("PORT", "10000"),
		MongoURI: getenv("MONGO_URI", "mongodb://localhost:27017"),
		Database: getenv("MONGO_DATABASE", "mobility-mate"),

		S3Endpoint:  getenv("S3_ENDPOINT", "s3.amazonaws.com"),
		S3AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		S3SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		S3Bucket:    os.Getenv("S3_BUCKET_NAME"),
		S3Region:    getenv("S3_REGION", "ap-southeast-2"),
		S3UseSSL:    useSSL,

		ModerationMinConfidence: minConfidence,

		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		TicketmasterAPIKey: os.Getenv("TICKETMASTER_API_KEY"),
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
