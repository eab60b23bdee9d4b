package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds everything the serve command needs at startup.
type ServerConfig struct {
	Host         string
	Port         string
	Environment  string
	ClinicOffset time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultClinicOffset shifts server UTC time to the clinic's wall clock.
// Appointment slots are stored as naive local times, so "now" has to be
// moved into that frame before window comparisons.
const DefaultClinicOffset = -5 * time.Hour

// LoadEnv loads environment variables from a .env file if one exists.
// Missing files are not an error; system-wide environment still applies.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// GetOpenAIKey retrieves and validates the OpenAI API key.
// An empty key is allowed; callers that need it use RequireOpenAIKey.
func GetOpenAIKey() (string, error) {
	key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if key == "" {
		return "", nil
	}

	if !strings.HasPrefix(key, "sk-") {
		return "", fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
	}
	if len(key) < 20 {
		return "", fmt.Errorf("invalid OPENAI_API_KEY format: too short")
	}

	return key, nil
}

// RequireOpenAIKey fails fast when transcription or summarization is invoked
// without a configured key.
func RequireOpenAIKey() (string, error) {
	key, err := GetOpenAIKey()
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", fmt.Errorf("OPENAI_API_KEY must be set in environment or .env file")
	}
	return key, nil
}

// GetServerConfig assembles the server configuration from the environment.
func GetServerConfig() ServerConfig {
	cfg := ServerConfig{
		Host:         getEnvOrDefault("HOST", "0.0.0.0"),
		Port:         getEnvOrDefault("PORT", "8000"),
		Environment:  getEnvOrDefault("ENVIRONMENT", "development"),
		ClinicOffset: DefaultClinicOffset,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if raw := os.Getenv("CLINIC_UTC_OFFSET_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil {
			cfg.ClinicOffset = time.Duration(hours) * time.Hour
		}
	}

	return cfg
}

// GetProjectRoot finds the project root directory by looking for go.mod
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find project root (go.mod not found)")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
