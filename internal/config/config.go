package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

type Config struct {
	DSN         string
	JWTSecret   string
	AppPort     string
	StoreDriver string
	LogDev      bool
	Seed        bool

	// EnvFile reports whether a .env file was found.
	EnvFile bool
}

// Load reads a .env file when present, then the environment.
func Load() (Config, error) {
	cfg := Config{
		EnvFile:     godotenv.Load() == nil,
		DSN:         os.Getenv("MYSQL_DSN"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		AppPort:     os.Getenv("APP_PORT"),
		StoreDriver: os.Getenv("STORE_DRIVER"),
		LogDev:      envBool("LOG_DEV"),
		Seed:        envBool("SEED"),
	}

	if cfg.StoreDriver == "" {
		cfg.StoreDriver = StoreMySQL
	}
	switch cfg.StoreDriver {
	case StoreMySQL:
		if cfg.DSN == "" {
			return cfg, fmt.Errorf("MYSQL_DSN not set in environment")
		}
	case StoreMemory:
	default:
		return cfg, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-only"
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}

	return cfg, nil
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}
