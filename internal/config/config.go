// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"mindmash-api/internal/mint"
	"mindmash-api/pkg/db" // Import db package for its Config struct
)

const defaultEnvFile = ".env"

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort   string
	LogLevel     string
	DB           db.Config
	StoreTimeout time.Duration // Bounds identity store work per login
	Mint         mint.Config   // Minting is disabled when Mint.URL is empty
}

// LoadConfig loads configuration from environment variables.
// Variables from ENV_FILE (default ".env") are loaded first when the file exists;
// variables already set in the environment win.
// It returns an AppConfig instance or an error if any variable is invalid.
func LoadConfig() (*AppConfig, error) {
	if err := loadEnvFile(getEnv("ENV_FILE", defaultEnvFile)); err != nil {
		return nil, err
	}

	dbPort, err := getInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	maxOpen, err := getInt("DB_MAX_OPEN_CONNS", 25)
	if err != nil {
		return nil, err
	}
	maxIdle, err := getInt("DB_MAX_IDLE_CONNS", 5)
	if err != nil {
		return nil, err
	}
	connLifetime, err := getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	storeTimeout, err := getDuration("STORE_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	mintTimeout, err := getDuration("MINT_TIMEOUT", mint.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	mintMaxElapsed, err := getDuration("MINT_MAX_ELAPSED", mint.DefaultMaxElapsed)
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		DB: db.Config{
			Host:            getEnv("DB_HOST", "localhost"), // Default to localhost for local development
			Port:            dbPort,
			User:            getEnv("DB_USER", "user"),
			Password:        getEnv("DB_PASSWORD", "password"),
			DBName:          getEnv("DB_NAME", "mindmash"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    maxOpen,
			MaxIdleConns:    maxIdle,
			ConnMaxLifetime: connLifetime,
		},
		StoreTimeout: storeTimeout,
		Mint: mint.Config{
			URL:        os.Getenv("MINT_API_URL"),
			APIKey:     os.Getenv("MINT_API_KEY"),
			Timeout:    mintTimeout,
			MaxElapsed: mintMaxElapsed,
		},
	}, nil
}

// MintEnabled reports whether a minting API is configured.
func (c *AppConfig) MintEnabled() bool {
	return c.Mint.URL != ""
}

func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load env file %s: %w", path, err)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
