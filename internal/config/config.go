package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port              string
	DatabaseURL       string
	OpenAIKey         string
	JWTSecret         string
	TokenTTL          time.Duration
	UploadDir         string
	MaxUploadBytes    int64
	TranscribeTimeout time.Duration
	OrganizeTimeout   time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		JWTSecret:         os.Getenv("SECRET_KEY"),
		TokenTTL:          time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		UploadDir:         getEnv("UPLOAD_DIR", "uploads/audio"),
		MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_MB", 25)) << 20,
		TranscribeTimeout: time.Duration(getEnvInt("TRANSCRIBE_TIMEOUT_SECONDS", 90)) * time.Second,
		OrganizeTimeout:   time.Duration(getEnvInt("ORGANIZE_TIMEOUT_SECONDS", 60)) * time.Second,
	}

	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
