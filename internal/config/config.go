package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`
	RedisURL    string `mapstructure:"REDIS_URL"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogFile  string `mapstructure:"LOG_FILE"`

	MetricsUser string `mapstructure:"METRICS_USER"`
	MetricsPass string `mapstructure:"METRICS_PASS"`
	PprofSecret string `mapstructure:"PPROF_SECRET"`

	FCMServiceAccountJSON string `mapstructure:"FCM_SERVICE_ACCOUNT_JSON"`
	FCMCredentialsFile    string `mapstructure:"FCM_CREDENTIALS_FILE"`
	NotifierWorkers       int    `mapstructure:"NOTIFIER_WORKERS"`

	DonationTTL     time.Duration `mapstructure:"DONATION_TTL"`
	CleanupInterval time.Duration `mapstructure:"CLEANUP_INTERVAL"`
}

var keys = []string{
	"PORT",
	"DATABASE_URL",
	"DB_MAX_CONNS",
	"DB_MIN_CONNS",
	"REDIS_URL",
	"LOG_LEVEL",
	"LOG_FILE",
	"METRICS_USER",
	"METRICS_PASS",
	"PPROF_SECRET",
	"FCM_SERVICE_ACCOUNT_JSON",
	"FCM_CREDENTIALS_FILE",
	"NOTIFIER_WORKERS",
	"DONATION_TTL",
	"CLEANUP_INTERVAL",
}

// Load reads .env (when present) and the process environment.
// envFiles defaults to ".env".
func Load(envFiles ...string) (Config, error) {
	var cfg Config

	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.SetDefault("PORT", "3333")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FCM_CREDENTIALS_FILE", "./serviceAccountKey.json")
	v.SetDefault("NOTIFIER_WORKERS", 3)
	v.SetDefault("DONATION_TTL", "24h")
	v.SetDefault("CLEANUP_INTERVAL", "1h")
	v.AutomaticEnv()

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return cfg, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is not set")
	}
	if c.DonationTTL <= 0 || c.CleanupInterval <= 0 {
		return fmt.Errorf("DONATION_TTL and CLEANUP_INTERVAL must be positive")
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}
