package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CatalogConfig carries the tenant catalog settings: the language set every
// translation payload must cover, the language used to pick the single
// `translation` field, and the currency assigned to new variants.
type CatalogConfig struct {
	Languages       []string `mapstructure:"languages"`
	DefaultLanguage string   `mapstructure:"defaultLanguage"`
	DefaultCurrency string   `mapstructure:"defaultCurrency"`
}

func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		Languages:       []string{"en"},
		DefaultLanguage: "en",
		DefaultCurrency: "USD",
	}
}

// CatalogConfigHolder hot-reloads catalog settings from catalog.yml.
type CatalogConfigHolder struct {
	current atomic.Value // holds CatalogConfig
}

func NewCatalogConfigHolder() (*CatalogConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("catalog")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/mall/config") // Volume-mounted config
	v.AddConfigPath("/etc/mall")            // System config
	v.AddConfigPath(".")                    // Current directory (dev mode)

	v.SetEnvPrefix("MALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultCatalogConfig()
		v.SetDefault("catalog.languages", defaults.Languages)
		v.SetDefault("catalog.defaultLanguage", defaults.DefaultLanguage)
		v.SetDefault("catalog.defaultCurrency", defaults.DefaultCurrency)
	}

	var cfg CatalogConfig
	if err := v.UnmarshalKey("catalog", &cfg); err != nil {
		return nil, err
	}
	if err := validateCatalogConfig(cfg); err != nil {
		return nil, err
	}

	holder := &CatalogConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CatalogConfig
		if err := v.UnmarshalKey("catalog", &updated); err != nil {
			log.Printf("[catalog-config] reload failed: %v", err)
			return
		}
		if err := validateCatalogConfig(updated); err != nil {
			log.Printf("[catalog-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[catalog-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// StaticCatalogConfigHolder pins a holder to a fixed config with no file
// watching. Tests use it.
func StaticCatalogConfigHolder(cfg CatalogConfig) *CatalogConfigHolder {
	holder := &CatalogConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *CatalogConfigHolder) Get() CatalogConfig {
	return h.current.Load().(CatalogConfig)
}

func validateCatalogConfig(cfg CatalogConfig) error {
	if len(cfg.Languages) == 0 {
		return errors.New("catalog.languages cannot be empty")
	}
	if cfg.DefaultLanguage == "" {
		return errors.New("catalog.defaultLanguage cannot be empty")
	}
	if !contains(cfg.Languages, cfg.DefaultLanguage) {
		return errors.New("catalog.defaultLanguage must be one of catalog.languages")
	}
	if len(cfg.DefaultCurrency) != 3 {
		return errors.New("catalog.defaultCurrency must be a 3-letter code")
	}
	return nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
