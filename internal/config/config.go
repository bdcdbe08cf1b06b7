package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the service configuration, loaded from WIDEPAY_* environment
// variables.
type Config struct {
	Environment string

	HTTPAddr string

	// WidePay wallet credentials used as HTTP basic auth on every gateway call.
	WalletID    string
	WalletToken string

	// Base URL of the WidePay API.
	APIBaseURL string

	// Public base URL of this service; notification callbacks are built from it.
	CallbackBaseURL string

	Currency string

	ConnectTimeout time.Duration
	RequestTimeout time.Duration

	DatabasePath string

	KafkaBrokers string
	KafkaTopic   string

	TracingEnabled  bool
	TracingEndpoint string
	SamplingRatio   float64
}

func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("widepay")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("environment", "development")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("api_base_url", "https://api.widepay.com/v1")
	v.SetDefault("callback_base_url", "http://localhost:8080")
	v.SetDefault("currency", "BRL")
	v.SetDefault("connect_timeout", "30s")
	v.SetDefault("request_timeout", "60s")
	v.SetDefault("database_path", "widepay.db")
	v.SetDefault("kafka_topic", "widepay.transactions")
	v.SetDefault("tracing_sampling_ratio", 1.0)

	cfg := Config{
		Environment:     v.GetString("environment"),
		HTTPAddr:        v.GetString("http_addr"),
		WalletID:        v.GetString("wallet_id"),
		WalletToken:     v.GetString("wallet_token"),
		APIBaseURL:      v.GetString("api_base_url"),
		CallbackBaseURL: v.GetString("callback_base_url"),
		Currency:        v.GetString("currency"),
		ConnectTimeout:  v.GetDuration("connect_timeout"),
		RequestTimeout:  v.GetDuration("request_timeout"),
		DatabasePath:    v.GetString("database_path"),
		KafkaBrokers:    v.GetString("kafka_brokers"),
		KafkaTopic:      v.GetString("kafka_topic"),
		TracingEnabled:  v.GetBool("tracing_enabled"),
		TracingEndpoint: v.GetString("tracing_endpoint"),
		SamplingRatio:   v.GetFloat64("tracing_sampling_ratio"),
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 30 * time.Second
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 60 * time.Second
	}
	if strings.TrimSpace(c.Currency) == "" {
		c.Currency = "BRL"
	}
	return c
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}
