// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/rovshanmuradov/swap-terminal/internal/wallet"
)

type Config struct {
	PriceFeedURL  string           `mapstructure:"price_feed_url"`
	PriceDelay    int              `mapstructure:"price_delay"`  // ms between feed refreshes
	SettleDelay   int              `mapstructure:"settle_delay"` // ms of simulated settlement latency
	DebugLogging  bool             `mapstructure:"debug_logging"`
	LogFile       string           `mapstructure:"log_file"`
	License       string           `mapstructure:"license"`
	KeygenAccount string           `mapstructure:"keygen_account"`
	KeygenProduct string           `mapstructure:"keygen_product"`
	KeygenToken   string           `mapstructure:"keygen_token"`
	Priorities    map[string]int   `mapstructure:"priorities"`
	Balances      []wallet.Balance `mapstructure:"balances"`
}

const (
	DefaultPriceFeedURL = "https://interview.switcheo.com/prices.json"
	DefaultPriceDelay   = 30000
	DefaultSettleDelay  = 1500
	DefaultLogFile      = "swap-terminal.log"
)

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"price_feed_url": DefaultPriceFeedURL,
		"price_delay":    DefaultPriceDelay,
		"settle_delay":   DefaultSettleDelay,
		"log_file":       DefaultLogFile,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := loadEnvironmentVariables(v, &cfg); err != nil {
		return nil, err
	}

	return &cfg, validateConfig(&cfg)
}

// PriorityTable returns the configured display ranking, falling back to
// the built-in table when none is configured.
func (c *Config) PriorityTable() wallet.PriorityTable {
	if len(c.Priorities) == 0 {
		return wallet.DefaultPriorityTable()
	}
	return wallet.PriorityTable(c.Priorities)
}

func validateConfig(cfg *Config) error {
	if cfg.PriceFeedURL == "" {
		return errors.New("missing price_feed_url in configuration")
	}
	if err := validateURLWithCache(cfg.PriceFeedURL, "http"); err != nil {
		return errors.New("invalid price feed URL protocol")
	}
	if err := validateNumericParams(cfg); err != nil {
		return err
	}
	if cfg.KeygenAccount != "" && cfg.License == "" {
		return errors.New("keygen_account is set but license is missing")
	}
	return nil
}

func validateNumericParams(cfg *Config) error {
	if cfg.PriceDelay <= 0 {
		return errors.New("invalid price_delay")
	}
	if cfg.SettleDelay <= 0 {
		return errors.New("invalid settle_delay")
	}
	for _, b := range cfg.Balances {
		if b.Amount < 0 {
			return errors.New("invalid balance amount for " + b.Symbol)
		}
	}
	return nil
}

var urlCache sync.Map

func validateURLWithCache(rawURL string, protocol string) error {
	if _, ok := urlCache.Load(rawURL); ok {
		return nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) {
		return errors.New("invalid URL protocol")
	}
	urlCache.Store(rawURL, parsed)
	return nil
}

func loadEnvironmentVariables(v *viper.Viper, cfg *Config) error {
	v.AutomaticEnv()
	v.SetEnvPrefix("SWAP_TERMINAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envLicense := v.GetString("LICENSE")
	if envLicense != "" {
		cfg.License = envLicense
	}

	envFeedURL := v.GetString("PRICE_FEED_URL")
	if envFeedURL != "" {
		cfg.PriceFeedURL = envFeedURL
	}
	return nil
}
