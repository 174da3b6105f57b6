package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisCheckoutDB  int    `mapstructure:"REDIS_CHECKOUT_DB"`
	RedisSnapshotDB  int    `mapstructure:"REDIS_SNAPSHOT_DB"`
	RedisTaskQueueDB int    `mapstructure:"REDIS_TASK_QUEUE_DB"`

	// Checkout pricing.
	VATRate         float64 `mapstructure:"VAT_RATE"`
	CashHandlingFee float64 `mapstructure:"CASH_HANDLING_FEE"`
	Currency        string  `mapstructure:"CURRENCY"`
	InstallmentsN   int     `mapstructure:"INSTALLMENTS_N"`

	// Session lifetime in minutes.
	SessionTTLMinutes int `mapstructure:"SESSION_TTL_MINUTES"`

	// External collaborators.
	OfferRulesURL    string `mapstructure:"OFFER_RULES_URL"`
	StripeKey        string `mapstructure:"STRIPE_KEY"`
	PaymentReturnURL string `mapstructure:"PAYMENT_RETURN_URL"`
	PaymentCancelURL string `mapstructure:"PAYMENT_CANCEL_URL"`

	// Minutes a pending appointment may sit before the reconciliation
	// sweep cancels it.
	PendingReconcileMinutes int `mapstructure:"PENDING_RECONCILE_MINUTES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CHECKOUT_DB", 0)
	viper.SetDefault("REDIS_SNAPSHOT_DB", 1)
	viper.SetDefault("REDIS_TASK_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("VAT_RATE", 0.05)
	viper.SetDefault("CASH_HANDLING_FEE", 5.0)
	viper.SetDefault("CURRENCY", "AED")
	viper.SetDefault("INSTALLMENTS_N", 4)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("OFFER_RULES_URL", "http://localhost:9090/api/offers/validate")
	viper.SetDefault("PAYMENT_RETURN_URL", "https://homely.app/checkout/return")
	viper.SetDefault("PAYMENT_CANCEL_URL", "https://homely.app/checkout/cancel")
	viper.SetDefault("PENDING_RECONCILE_MINUTES", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// SessionTTL returns the checkout session lifetime as a duration.
func SessionTTL() time.Duration {
	return time.Duration(AppConfig.SessionTTLMinutes) * time.Minute
}
