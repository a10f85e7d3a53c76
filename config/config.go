package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// OneClickConfig holds the settings of the live quote source
type OneClickConfig struct {
	JWTToken  string
	BaseURL   string
	Recipient string // Address used for dry quotes
	RefundTo  string
}

// Config holds the application configuration
type Config struct {
	LogLevel    string
	LogFile     string
	CatalogFile string

	// Form defaults
	From        string
	To          string
	OrderType   string
	TagRequired []string

	RateSource  string // static or oneclick
	RateTimeout time.Duration
	OneClick    OneClickConfig
}

const (
	SourceStatic   = "static"
	SourceOneClick = "oneclick"
)

var globalConfig *Config

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".exchange-form")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME")
	v.AddConfigPath(".")

	setDefaults(v)

	// Read from environment variables, e.g. EXCHANGE_FORM_RATES_SOURCE
	v.SetEnvPrefix("EXCHANGE_FORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalConfig = cfg
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("catalog.file", "")
	v.SetDefault("form.from", "BTC")
	v.SetDefault("form.to", "ETH")
	v.SetDefault("form.order_type", "float")
	v.SetDefault("form.tag_required", []string{"XRP", "XLM", "BNB", "EOS", "ATOM", "TON"})
	v.SetDefault("rates.source", SourceStatic)
	v.SetDefault("rates.timeout", 10*time.Second)
	v.SetDefault("rates.oneclick.jwt_token", "")
	v.SetDefault("rates.oneclick.base_url", "https://1click.chaindefuser.com")
	v.SetDefault("rates.oneclick.recipient", "")
	v.SetDefault("rates.oneclick.refund_to", "")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		LogLevel:    v.GetString("log.level"),
		LogFile:     v.GetString("log.file"),
		CatalogFile: v.GetString("catalog.file"),
		From:        strings.ToUpper(v.GetString("form.from")),
		To:          strings.ToUpper(v.GetString("form.to")),
		OrderType:   strings.ToLower(v.GetString("form.order_type")),
		TagRequired: v.GetStringSlice("form.tag_required"),
		RateSource:  strings.ToLower(v.GetString("rates.source")),
		RateTimeout: v.GetDuration("rates.timeout"),
		OneClick: OneClickConfig{
			JWTToken:  v.GetString("rates.oneclick.jwt_token"),
			BaseURL:   v.GetString("rates.oneclick.base_url"),
			Recipient: v.GetString("rates.oneclick.recipient"),
			RefundTo:  v.GetString("rates.oneclick.refund_to"),
		},
	}
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if c.OrderType != "fixed" && c.OrderType != "float" {
		return fmt.Errorf("invalid form.order_type %q: must be fixed or float", c.OrderType)
	}
	if c.From == "" || c.To == "" {
		return fmt.Errorf("form.from and form.to must name currencies")
	}
	if c.RateTimeout <= 0 {
		return fmt.Errorf("rates.timeout must be positive, got %s", c.RateTimeout)
	}

	switch c.RateSource {
	case SourceStatic:
	case SourceOneClick:
		// Validate JWT token
		if c.OneClick.JWTToken == "" {
			return fmt.Errorf("JWT token not found. Please set EXCHANGE_FORM_RATES_ONECLICK_JWT_TOKEN or add rates.oneclick.jwt_token to .exchange-form.yaml")
		}
	default:
		return fmt.Errorf("unknown rates.source %q: must be %s or %s", c.RateSource, SourceStatic, SourceOneClick)
	}
	return nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}
	return globalConfig
}

// Set updates the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}
