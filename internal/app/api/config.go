package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port        string
	PostgresDSN string
	JWTSecret   string
	RedisAddr   string

	S3Bucket   string
	S3Region   string
	S3Endpoint string
	S3BaseURL  string

	UploadDir     string
	UploadBaseURL string

	PublicRateRPS   float64
	PublicRateBurst int
}

// LoadConfig reads environment variables (honoring a local .env file),
// applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:            envDefault("PORT", "8080"),
		PostgresDSN:     strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		JWTSecret:       strings.TrimSpace(os.Getenv("JWT_SECRET")),
		RedisAddr:       strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		S3Bucket:        strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:        envDefault("S3_REGION", "us-east-1"),
		S3Endpoint:      strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
		S3BaseURL:       strings.TrimSpace(os.Getenv("S3_BASE_URL")),
		UploadDir:       envDefault("UPLOAD_DIR", "uploads"),
		UploadBaseURL:   envDefault("UPLOAD_BASE_URL", "/uploads"),
		PublicRateRPS:   5,
		PublicRateBurst: 10,
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if raw := strings.TrimSpace(os.Getenv("PUBLIC_RATE_RPS")); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil || rps <= 0 {
			return Config{}, fmt.Errorf("PUBLIC_RATE_RPS must be a positive number")
		}
		cfg.PublicRateRPS = rps
	}
	if raw := strings.TrimSpace(os.Getenv("PUBLIC_RATE_BURST")); raw != "" {
		burst, err := strconv.Atoi(raw)
		if err != nil || burst <= 0 {
			return Config{}, fmt.Errorf("PUBLIC_RATE_BURST must be a positive integer")
		}
		cfg.PublicRateBurst = burst
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
