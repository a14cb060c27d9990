package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string
	LogLevel    string
	API         APIConfig
	Gateway     GatewayConfig
	Stub        StubConfig
}

// APIConfig points the client at the hotelstay backend
type APIConfig struct {
	BaseURL        string // e.g. https://hotelstay-ov1p.onrender.com/api
	TimeoutSeconds int    // transport timeout; bounds hung verification calls
}

// GatewayConfig carries the payment-widget defaults. The key on the
// PaymentIntent wins when the server supplies one.
type GatewayConfig struct {
	Key      string // RAZORPAY_KEY_ID
	Currency string
}

// StubConfig configures the in-memory reference backend (tests, local dev)
type StubConfig struct {
	Port          string
	WebhookSecret string // PAYMENT_WEBHOOK_SECRET: HMAC key for payment signatures
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("HOTELSTAY_TIMEOUT_SECONDS", "30")
	viper.SetDefault("GATEWAY_CURRENCY", "INR")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		API: APIConfig{
			BaseURL:        strings.TrimSpace(getEnvOrViper("HOTELSTAY_API_URL", "http://localhost:8080/api")),
			TimeoutSeconds: viper.GetInt("HOTELSTAY_TIMEOUT_SECONDS"),
		},
		Gateway: GatewayConfig{
			Key:      strings.TrimSpace(getEnvOrViper("RAZORPAY_KEY_ID", "")),
			Currency: getEnvOrViper("GATEWAY_CURRENCY", "INR"),
		},
		Stub: StubConfig{
			Port:          getEnvOrViper("PORT", "8080"),
			WebhookSecret: strings.TrimSpace(getEnvOrViper("PAYMENT_WEBHOOK_SECRET", "stub-secret-change-me")),
		},
	}

	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = 30
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
