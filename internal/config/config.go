package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config centralises all environment configuration. Missing database or
// payment credentials abort startup.
type Config struct {
	ListenPort     string
	DatabaseURL    string
	FrontendOrigin string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	OwnerEmail   string

	MPAccessToken string
	JWTSecret     string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ListenPort:     getEnvOrDefault("PORT", "3001"),
		DatabaseURL:    getEnvOrFail("POSTGRES_URL"),
		FrontendOrigin: getEnvOrDefault("FRONTEND_ORIGIN", "http://localhost:5500"),

		SMTPHost:     getEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnvOrDefault("SMTP_FROM", "rdbarbercontato@gmail.com"),
		OwnerEmail:   getEnvOrDefault("OWNER_EMAIL", "rdbarbercontato@gmail.com"),

		MPAccessToken: getEnvOrFail("MP_ACCESS_TOKEN"),
		JWTSecret:     getEnvOrFail("JWT_SECRET"),
	}

	return cfg
}

func getEnvOrFail(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("required environment variable %s is not set", key)
	}
	return v
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid value for %s, using default %d", key, fallback)
		return fallback
	}
	return n
}
