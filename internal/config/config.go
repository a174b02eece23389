package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
)

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	Port        string `validate:"required,numeric"`
	Environment string `validate:"required,oneof=development staging production test"`

	StoreDriver    string `validate:"required,oneof=memory redis postgres"`
	DatabaseURL    string `validate:"required_if=StoreDriver postgres"`
	RedisURL       string `validate:"required_if=StoreDriver redis"`
	StoreKeyPrefix string
	SeedOnStart    bool
	FixturesPath   string

	JWTSecret       string        `validate:"required,min=16"`
	JWTAccessExpiry time.Duration `validate:"gt=0"`

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string `validate:"required_with=MinIOEndpoint"`
	MinIOUseSSL    bool

	CORSOrigins string

	ResendAPIKey string
	FromEmail    string `validate:"omitempty,email"`

	DonationCooldownRRule string        `validate:"required"`
	NearbyMaxDistanceKm   float64       `validate:"gt=0"`
	SimulatedLatency      time.Duration `validate:"gte=0"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		StoreDriver:    getEnv("STORE_DRIVER", StoreMemory),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		StoreKeyPrefix: getEnv("STORE_KEY_PREFIX", "blood_connect_"),
		SeedOnStart:    getBoolEnv("SEED_ON_START", true),
		FixturesPath:   getEnv("FIXTURES_PATH", ""),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTAccessExpiry: getDurationEnv("JWT_ACCESS_EXPIRY", 24*time.Hour),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "blood-connect-snapshots"),
		MinIOUseSSL:    getBoolEnv("MINIO_USE_SSL", false),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),

		DonationCooldownRRule: getEnv("DONATION_COOLDOWN_RRULE", "FREQ=MONTHLY;INTERVAL=3"),
		NearbyMaxDistanceKm:   getFloatEnv("NEARBY_MAX_DISTANCE_KM", 10),
		SimulatedLatency:      getDurationEnv("SIMULATED_LATENCY", 0),
	}
}

// Validate checks the struct rules and that the cooldown rule parses.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if _, err := rrule.StrToRRule(cfg.DonationCooldownRRule); err != nil {
		return fmt.Errorf("invalid DONATION_COOLDOWN_RRULE: %w", err)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
