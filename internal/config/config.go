package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env      string   `mapstructure:"env"` // current application environment (local, dev, prod etc)
	Log      Log      `mapstructure:"log"`
	HTTP     HTTP     `mapstructure:"http"`
	Quiz     Quiz     `mapstructure:"quiz"`
	Words    Words    `mapstructure:"words"`
	Sessions Sessions `mapstructure:"sessions"`
	Database Database `mapstructure:"database"`
	Telegram Telegram `mapstructure:"telegram"`
}

// Log contains logger settings.
type Log struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// HTTP contains web server settings.
type HTTP struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

// Quiz contains presentation timing.
type Quiz struct {
	FeedbackDelay time.Duration `mapstructure:"feedback_delay"` // pause between an answer and the next question
}

// Words describes where the word list comes from.
type Words struct {
	Primary      string        `mapstructure:"primary"`  // location tried first
	Fallback     string        `mapstructure:"fallback"` // location tried when primary fails; empty disables
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	Table        string        `mapstructure:"table"` // table for postgres/sqlite sources
	Sheet        string        `mapstructure:"sheet"` // sheet for xlsx sources
}

// Sessions controls eviction of idle quiz sessions.
type Sessions struct {
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`
	SweepSchedule string        `mapstructure:"sweep_schedule"` // cron spec
}

// Database contains connection pool settings for SQL word sources and import targets.
type Database struct {
	MaxConnections  int32         `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Telegram contains bot settings. The bot runs only when a token is present.
type Telegram struct {
	Token string `mapstructure:"-"` // Telegram API token loaded from environment
	Debug bool   `mapstructure:"debug"`
}

// Enabled reports whether the bot should start.
func (t Telegram) Enabled() bool {
	return t.Token != ""
}

// IsLocal reports whether the app runs on a developer machine.
func (c *Config) IsLocal() bool {
	return c.Env == "local"
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()
	v.AllowEmptyEnv(true) // WORDS_FALLBACK= disables the fallback source

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("words.primary", "WORDS_PRIMARY")
	_ = v.BindEnv("words.fallback", "WORDS_FALLBACK")
	_ = v.BindEnv("http.addr", "HTTP_ADDR")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.Telegram.Token = v.GetString("telegram_api_token")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("log.level", "info")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_header_timeout", "5s")
	v.SetDefault("http.shutdown_timeout", "10s")

	v.SetDefault("quiz.feedback_delay", "1500ms")

	v.SetDefault("words.primary", "data/words.json")
	v.SetDefault("words.fallback", "embedded")
	v.SetDefault("words.fetch_timeout", "10s")
	v.SetDefault("words.table", "words")
	v.SetDefault("words.sheet", "")

	v.SetDefault("sessions.idle_ttl", "30m")
	v.SetDefault("sessions.sweep_schedule", "@every 5m")

	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	v.SetDefault("telegram.debug", false)
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Words.Primary) == "" {
		return fmt.Errorf("%w: words.primary is required", ErrInvalidConfig)
	}
	if c.Quiz.FeedbackDelay < 0 {
		return fmt.Errorf("%w: quiz.feedback_delay must not be negative", ErrInvalidConfig)
	}
	if c.Database.MaxConnections < 0 {
		return fmt.Errorf("%w: database.max_connections must not be negative", ErrInvalidConfig)
	}
	if c.Sessions.IdleTTL <= 0 {
		return fmt.Errorf("%w: sessions.idle_ttl must be positive", ErrInvalidConfig)
	}
	return nil
}
