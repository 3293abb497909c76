package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Database configuration
	DBType            string // mysql, postgres, sqlite, sqlserver, etc.
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Authorizer configuration
	AuthzURL      string
	AuthzClientID string

	// Payment gateway configuration
	MidtransServerKey string
	MidtransProd      bool
	PaymentCurrency   string
	UnlockFee         int64 // smallest currency unit
	FeaturedFee       int64
	ListingFee        int64
	BookingHoldFee    int64

	// Public submission throttling
	SubmissionLimit        int // per contact number per window
	SubmissionWindowMinute int

	// Free-trial default applied when the settings table has no row yet
	FreeTrialDefault bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                   getEnv("PORT", "3000"),
		DBType:                 getEnv("DB_TYPE", "mysql"),
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "3306"),
		DBDatabase:             getEnv("DB_DATABASE", ""),
		DBUser:                 getEnv("DB_USER", ""),
		DBPassword:             getEnv("DB_PASSWORD", ""),
		DBConnectionLimit:      getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		AuthzURL:               getEnv("AUTHZ_URL", ""),
		AuthzClientID:          getEnv("AUTHZ_CLIENT_ID", ""),
		MidtransServerKey:      getEnv("MIDTRANS_SERVER_KEY", ""),
		MidtransProd:           getEnvAsBool("MIDTRANS_PRODUCTION", false),
		PaymentCurrency:        getEnv("PAYMENT_CURRENCY", "INR"),
		UnlockFee:              int64(getEnvAsInt("UNLOCK_FEE", 9900)),
		FeaturedFee:            int64(getEnvAsInt("FEATURED_FEE", 49900)),
		ListingFee:             int64(getEnvAsInt("LISTING_FEE", 19900)),
		BookingHoldFee:         int64(getEnvAsInt("BOOKING_HOLD_FEE", 99900)),
		SubmissionLimit:        getEnvAsInt("SUBMISSION_LIMIT", 3),
		SubmissionWindowMinute: getEnvAsInt("SUBMISSION_WINDOW_MINUTES", 60),
		FreeTrialDefault:       getEnvAsBool("FREE_TRIAL_DEFAULT", true),
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBType != "sqlite" && cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	if cfg.AuthzURL == "" {
		return nil, fmt.Errorf("AUTHZ_URL is required")
	}
	if cfg.AuthzClientID == "" {
		return nil, fmt.Errorf("AUTHZ_CLIENT_ID is required")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
