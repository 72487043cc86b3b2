package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries every runtime setting the process needs. It is built once in
// main and handed to constructors; no package keeps mutable globals.
type Config struct {
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     int
	DBName     string

	ListenAddr string
	JWTSecret  string

	OllamaURL     string
	OllamaModel   string
	OllamaTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		DBUser:        getenv("DB_USER", "postgres"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        5432,
		DBName:        getenv("DB_NAME", "expense_tracker"),
		ListenAddr:    getenv("LISTEN_ADDR", ":8080"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		OllamaURL:     getenv("OLLAMA_URL", ""),
		OllamaModel:   getenv("OLLAMA_MODEL", "llama3"),
		OllamaTimeout: 15 * time.Second,
	}

	if port := os.Getenv("DB_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_PORT %q: %v", port, err)
		}
		cfg.DBPort = p
	}
	if t := os.Getenv("OLLAMA_TIMEOUT_SECONDS"); t != "" {
		secs, err := strconv.Atoi(t)
		if err != nil {
			return nil, fmt.Errorf("invalid OLLAMA_TIMEOUT_SECONDS %q: %v", t, err)
		}
		cfg.OllamaTimeout = time.Duration(secs) * time.Second
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return cfg, nil
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
