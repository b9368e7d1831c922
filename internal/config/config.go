package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backend selection values for QUAY_STORE.
const (
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	StoreBackend string // "redis" (default) or "memory" (dev/testing, not durable)
	SeedFile     string // optional YAML file imported into an empty store on startup

	CookieMaxAge   time.Duration // session cookie lifetime (default 1h)
	CookieSecure   bool          // set the Secure attribute on the session cookie
	BackupInterval time.Duration // interval between data snapshots (0 = disabled)

	// Redis (only used when StoreBackend == "redis")
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDialTimeout    time.Duration
	RedisReadTimeout    time.Duration
	RedisWriteTimeout   time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // cap on the wait between retries
	RedisPingTimeout    time.Duration // per-attempt ping timeout

	AllowedHosts []string // optional, restrict access to specific Host headers
	TrustProxy   bool     // true => resolve client IPs from proxy headers

	// Login rate limiting (POST /admin/auth)
	LoginBurst        int
	LoginRefillPerMin int
}

func Load() *Config {
	cfg := &Config{
		ListenPort:      getenv("QUAY_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("QUAY_SHUTDOWN_TIMEOUT", 5*time.Second),

		LogLevel:  getenv("QUAY_LOG_LEVEL", "info"),
		PrettyLog: mustBool("QUAY_PRETTY_LOG", true),

		StoreBackend: getenv("QUAY_STORE", StoreRedis),
		SeedFile:     getenv("QUAY_SEED_FILE", ""),

		CookieMaxAge:   mustDuration("QUAY_COOKIE_MAX_AGE", time.Hour),
		CookieSecure:   mustBool("QUAY_COOKIE_SECURE", false),
		BackupInterval: mustDuration("QUAY_BACKUP_INTERVAL", 24*time.Hour),

		AllowedHosts: splitAndTrim(getenv("QUAY_ALLOWED_HOSTS", "")),
		TrustProxy:   mustBool("QUAY_TRUST_PROXY", false),

		LoginBurst:        getenvInt("QUAY_LOGIN_BURST", 5),
		LoginRefillPerMin: getenvInt("QUAY_LOGIN_REFILL_PER_MIN", 10),
	}

	if cfg.StoreBackend == StoreRedis {
		cfg.RedisAddr = requireEnv("QUAY_REDIS_ADDR")
		cfg.RedisUser = getenv("QUAY_REDIS_USERNAME", "default")
		cfg.RedisPassword = getenv("QUAY_REDIS_PASSWORD", "")
		cfg.RedisDB = getenvInt("QUAY_REDIS_DB", 0)
		cfg.RedisDialTimeout = mustDuration("QUAY_REDIS_DIAL_TIMEOUT", 5*time.Second)
		cfg.RedisReadTimeout = mustDuration("QUAY_REDIS_READ_TIMEOUT", 3*time.Second)
		cfg.RedisWriteTimeout = mustDuration("QUAY_REDIS_WRITE_TIMEOUT", 3*time.Second)
		cfg.RedisPoolSize = getenvInt("QUAY_REDIS_POOL_SIZE", 10)
		cfg.RedisConnectTimeout = mustDuration("QUAY_REDIS_CONNECT_TIMEOUT", 30*time.Second)
		cfg.RedisRetryInterval = mustDuration("QUAY_REDIS_RETRY_INTERVAL", 2*time.Second)
		cfg.RedisMaxWait = mustDuration("QUAY_REDIS_MAX_WAIT", 10*time.Second)
		cfg.RedisPingTimeout = mustDuration("QUAY_REDIS_PING_TIMEOUT", 5*time.Second)
	} else if cfg.StoreBackend != StoreMemory {
		panic(fmt.Sprintf("❌ FATAL: QUAY_STORE must be %q or %q, got %q",
			StoreRedis, StoreMemory, cfg.StoreBackend))
	}

	return cfg
}

// helpers

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.Trim(strings.TrimSpace(part), `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
