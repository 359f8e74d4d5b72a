package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the runtime settings of the storefront.
// Values come from the environment; main loads .env first via godotenv.
type Config struct {
	Addr         string
	APIBaseURL   string
	AllowOrigins string

	// DatabaseURL selects the Postgres cart repository when set.
	// RedisAddr selects the Redis catalog cache when set.
	DatabaseURL string
	RedisAddr   string

	SessionSecret string
	CartStorePath string

	ProductsCacheTTL   time.Duration
	CategoriesCacheTTL time.Duration
	PromotionsCacheTTL time.Duration

	UpstreamTimeout    time.Duration
	OrderRedirectDelay time.Duration
}

func Load() Config {
	return Config{
		Addr:         getenv("STOREFRONT_ADDR", ":3000"),
		APIBaseURL:   getenv("API_BASE_URL", "http://localhost:8080"),
		AllowOrigins: getenv("ALLOW_ORIGINS", "*"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),

		SessionSecret: getenv("SESSION_SECRET", "dev-only-secret"),
		CartStorePath: getenv("CART_STORE_PATH", "./data"),

		ProductsCacheTTL:   getduration("PRODUCTS_CACHE_TTL", 60*time.Second),
		CategoriesCacheTTL: getduration("CATEGORIES_CACHE_TTL", 300*time.Second),
		PromotionsCacheTTL: getduration("PROMOTIONS_CACHE_TTL", 60*time.Second),

		UpstreamTimeout:    getduration("UPSTREAM_TIMEOUT", 10*time.Second),
		OrderRedirectDelay: getduration("ORDER_REDIRECT_DELAY", 3*time.Second),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// plain numbers are treated as seconds
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}
