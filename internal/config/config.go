package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// KV backend selectors for Config.KVBackend.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	HTTPAddr string
	BasePath string

	KVBackend   string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		BasePath:      normalizeBasePath(getenv("BASE_PATH", "")),
		KVBackend:     strings.ToLower(getenv("KV_BACKEND", BackendMemory)),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	db, err := strconv.Atoi(getenv("REDIS_DB", "0"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = db

	switch cfg.KVBackend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL required when KV_BACKEND=%s", BackendPostgres)
		}
	default:
		return Config{}, fmt.Errorf("unknown KV_BACKEND %q", cfg.KVBackend)
	}

	return cfg, nil
}

// normalizeBasePath ensures a non-empty prefix starts with "/" and has no
// trailing slash, so it can be mounted directly with chi's Route.
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
