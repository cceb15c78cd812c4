package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultGeminiModel   = "gemini-2.5-flash"
	defaultAdviceTimeout = 25 // seconds
)

type Config struct {
	// database path
	DatabasePath string

	// media storage configuration
	MediaStoragePath string // root directory for uploaded photos and avatars

	// generative-text service settings; an empty API key disables the
	// advice endpoints without affecting the rest of the API
	GeminiAPIKey string
	GeminiModel  string

	// upper bound on a single advice-generation attempt
	AdviceTimeout time.Duration

	// origins allowed by the CORS layer
	AllowedOrigins []string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", "littlesteps.db")

	mediaStorage := getEnvOrDefault("MEDIA_STORAGE_PATH", filepath.Join(".", "media_storage"))
	absMediaStorage, err := filepath.Abs(mediaStorage)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for media storage '%s': %w", mediaStorage, err)
	}

	origins := strings.Split(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:5173"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	cfg := Config{
		DatabasePath:     dbPath,
		MediaStoragePath: absMediaStorage,
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getEnvOrDefault("GEMINI_MODEL", defaultGeminiModel),
		AdviceTimeout:    time.Duration(getEnvIntOrDefault("ADVICE_TIMEOUT_SECONDS", defaultAdviceTimeout)) * time.Second,
		AllowedOrigins:   origins,
	}

	return cfg, nil
}
