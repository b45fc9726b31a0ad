package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfighcl"
	"github.com/joho/godotenv"
)

// EnvPrefix is prefix of environment variables
const EnvPrefix = "PLATE"

// DefaultFiles are config files read when present
var DefaultFiles = []string{"./plate.hcl", "./plate.local.hcl"}

// Config is application config
type Config struct {
	DatabaseDSN    string        `hcl:"database_dsn" env:"DATABASE_DSN"`
	FeedsFile      string        `hcl:"feeds_file" env:"FEEDS_FILE" default:"feeds.csv"`
	UpdateInterval time.Duration `hcl:"update_interval" env:"UPDATE_INTERVAL" default:"1h"`
	FetchTimeout   time.Duration `hcl:"fetch_timeout" env:"FETCH_TIMEOUT" default:"30s"`
	UserAgent      string        `hcl:"user_agent" env:"USER_AGENT" default:"plate/1.0"`
	DedupPerSource bool          `hcl:"dedup_per_source" env:"DEDUP_PER_SOURCE" default:"false"`
	Debug          bool          `hcl:"debug" env:"DEBUG" default:"false"`
	PushgatewayURL string        `hcl:"pushgateway_url" env:"PUSHGATEWAY_URL"`
	PushgatewayJob string        `hcl:"pushgateway_job" env:"PUSHGATEWAY_JOB" default:"plate"`
	TelegramToken  string        `hcl:"telegram_token" env:"TELEGRAM_TOKEN"`
	TelegramChatID string        `hcl:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

// DefaultDatabasePath is sqlite file used without a dsn
func DefaultDatabasePath() string {
	return filepath.Join(xdg.DataHome, "plate", "articles.db")
}

// Load read .env, config files and environment
func Load(files ...string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: EnvPrefix,
		SkipFlags: true,
		Files:     append(append([]string{}, DefaultFiles...), files...),
		FileDecoders: map[string]aconfig.FileDecoder{
			".hcl": aconfighcl.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, fmt.Errorf("config load fail: %w", err)
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = DefaultDatabasePath()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetUpdateInterval parse and set the update interval
func (c *Config) SetUpdateInterval(value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid update interval %q: %w", value, err)
	}
	c.UpdateInterval = d
	return nil
}

// Validate check config values
func (c *Config) Validate() error {
	if c.UpdateInterval <= 0 {
		return fmt.Errorf("update interval must be positive, got %s", c.UpdateInterval)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", c.FetchTimeout)
	}
	if c.FeedsFile == "" {
		return fmt.Errorf("feeds file is required")
	}
	if c.TelegramToken != "" && c.TelegramChatID == "" {
		return fmt.Errorf("telegram chat id is required with a telegram token")
	}
	return nil
}
