package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	MongoDBURI      string
	MongoDBPassword string
	MongoDBName     string

	RedisURL  string
	AMQPURL   string
	AMQPQueue string

	GeocodingAPIKey   string
	GeocodingBaseURL  string
	GeocodingTimeout  time.Duration
	GeocodingRate     float64
	GeocodingBurst    int
	GeocodingCacheTTL time.Duration

	JWKSURL   string
	JWTSecret string

	CORSOrigins      []string
	DefaultPageLimit int
	MaxPageLimit     int

	ChangeStreamEnabled bool
	ShutdownTimeout     time.Duration
}

func LoadConfig() (*Config, error) {
	var errs []string
	cfg := &Config{
		Port:        getEnvWithDefault("PORT", "8080"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),

		MongoDBURI:      os.Getenv("MONGODB_URI"),
		MongoDBPassword: os.Getenv("MONGODB_PASSWORD"),
		MongoDBName:     getEnvWithDefault("MONGODB_DATABASE", "eventscape"),

		RedisURL:  os.Getenv("REDIS_URL"),
		AMQPURL:   os.Getenv("AMQP_URL"),
		AMQPQueue: getEnvWithDefault("AMQP_QUEUE", "eventscape.changes"),

		GeocodingAPIKey:  os.Getenv("GEOCODING_API_KEY"),
		GeocodingBaseURL: os.Getenv("GEOCODING_BASE_URL"),

		JWKSURL:   os.Getenv("JWKS_URL"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
	}

	var err error
	if cfg.GeocodingTimeout, err = getEnvDuration("GEOCODING_TIMEOUT", 10*time.Second); err != nil {
		errs = append(errs, err.Error())
	}
	if cfg.GeocodingRate, err = getEnvFloat("GEOCODING_RATE", 10); err != nil {
		errs = append(errs, err.Error())
	}
	if cfg.GeocodingBurst, err = getEnvInt("GEOCODING_BURST", 5); err != nil {
		errs = append(errs, err.Error())
	}
	if cfg.GeocodingCacheTTL, err = getEnvDuration("GEOCODING_CACHE_TTL", 24*time.Hour); err != nil {
		errs = append(errs, err.Error())
	}
	if cfg.DefaultPageLimit, err = getEnvInt("DEFAULT_PAGE_LIMIT", 20); err != nil {
		errs = append(errs, err.Error())
	}
	if cfg.MaxPageLimit, err = getEnvInt("MAX_PAGE_LIMIT", 100); err != nil {
		errs = append(errs, err.Error())
	}
	if cfg.ChangeStreamEnabled, err = getEnvBool("CHANGE_STREAM_ENABLED", true); err != nil {
		errs = append(errs, err.Error())
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second); err != nil {
		errs = append(errs, err.Error())
	}

	// Validate required fields
	if cfg.MongoDBURI == "" {
		errs = append(errs, "MONGODB_URI is required")
	}
	if cfg.GeocodingAPIKey == "" {
		errs = append(errs, "GEOCODING_API_KEY is required")
	}
	if cfg.JWKSURL == "" && cfg.JWTSecret == "" {
		errs = append(errs, "one of JWKS_URL or JWT_SECRET is required")
	}
	if cfg.DefaultPageLimit > cfg.MaxPageLimit {
		errs = append(errs, "DEFAULT_PAGE_LIMIT must not exceed MAX_PAGE_LIMIT")
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// MongoURI substitutes the password placeholder some hosted connection strings carry.
func (c *Config) MongoURI() string {
	return strings.Replace(c.MongoDBURI, "<password>", c.MongoDBPassword, 1)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 10s", key)
	}
	return v, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false", key)
	}
	return v, nil
}

func getEnvList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
