package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Port            string
	DBDriver        string
	DBPath          string
	UploadDir       string
	MaxUploadMB     int
	DefaultLang     string
	LogLevel        string
	LogJSON         bool
	AdvisoryMode    string
	AdvisoryRules   string
	CatalogCacheTTL time.Duration
	SeedCatalog     bool
}

// MaxUploadBytes is the request body ceiling applied to multipart submissions.
func (c AppConfig) MaxUploadBytes() int64 { return int64(c.MaxUploadMB) << 20 }

func defaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_path", "agrosmart.db")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("max_upload_mb", 10)
	v.SetDefault("default_lang", "en")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
	v.SetDefault("advisory_mode", "table")
	v.SetDefault("advisory_rules", "")
	v.SetDefault("catalog_cache_ttl", "10m")
	v.SetDefault("seed_catalog", true)
}

// Load resolves the configuration from .env, an optional config.yaml in the
// working directory, and the process environment (highest precedence).
func Load() (AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] no .env file loaded: %v", err)
	}
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	defaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return AppConfig{}, fmt.Errorf("read config.yaml: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		Port:            v.GetString("port"),
		DBDriver:        strings.ToLower(v.GetString("db_driver")),
		DBPath:          v.GetString("db_path"),
		UploadDir:       v.GetString("upload_dir"),
		MaxUploadMB:     v.GetInt("max_upload_mb"),
		DefaultLang:     strings.ToLower(v.GetString("default_lang")),
		LogLevel:        v.GetString("log_level"),
		LogJSON:         v.GetBool("log_json"),
		AdvisoryMode:    strings.ToLower(v.GetString("advisory_mode")),
		AdvisoryRules:   v.GetString("advisory_rules"),
		CatalogCacheTTL: v.GetDuration("catalog_cache_ttl"),
		SeedCatalog:     v.GetBool("seed_catalog"),
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c AppConfig) Validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.AdvisoryMode {
	case "table", "random":
	default:
		return fmt.Errorf("unsupported ADVISORY_MODE %q", c.AdvisoryMode)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	if c.UploadDir == "" {
		return errors.New("UPLOAD_DIR is required")
	}
	return nil
}
