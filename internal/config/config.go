package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the process reads from the environment. A .env
// file, if present, is loaded by main before this runs.
type Config struct {
	HTTPAddr string
	MySQLDSN string

	// RedisAddr is optional; when empty the catalog client runs without a
	// cache.
	RedisAddr string

	JWTSecret       string
	CatalogCacheTTL time.Duration
}

func Load() Config {
	return Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		MySQLDSN:        getEnv("DB_DSN", "root:root@tcp(127.0.0.1:3306)/marketcart?parseTime=true"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		CatalogCacheTTL: getEnvDuration("CATALOG_CACHE_TTL_SECONDS", 60*time.Second),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}
