package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	AdapterPGX  = "pgx"
	AdapterSQL  = "sql"
	AdapterSQLX = "sqlx"

	LogFormatJSON = "json"
	LogFormatText = "text"

	envPrefix = "INTELLIB"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete lending desk configuration.
type Config struct {
	Database      DatabaseConfig      `mapstructure:"database"`
	Log           LogConfig           `mapstructure:"log"`
	Desk          DeskConfig          `mapstructure:"desk"`
	HTTP          HTTPConfig          `mapstructure:"http"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// DatabaseConfig configures the record store connection.
// An empty URL starts the desk without a backend.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	ReplicaURL      string        `mapstructure:"replica_url"`
	Adapter         string        `mapstructure:"adapter"`
	Schema          string        `mapstructure:"schema"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxConns        int           `mapstructure:"max_conns"`
	MinConns        int           `mapstructure:"min_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DeskConfig configures the lending desk itself.
type DeskConfig struct {
	ActionTimeout time.Duration `mapstructure:"action_timeout"`
	Barcode       string        `mapstructure:"barcode"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// ObservabilityConfig configures the OTLP gRPC exporters.
type ObservabilityConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	TraceEndpoint  string `mapstructure:"trace_endpoint"`
	MetricEndpoint string `mapstructure:"metric_endpoint"`
}

// Load reads the configuration from defaults, the optional YAML file, and the environment.
// With an empty path it looks for config.yaml in ./config and the working directory;
// a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("database.url", "")
	v.SetDefault("database.replica_url", "")
	v.SetDefault("database.adapter", AdapterPGX)
	v.SetDefault("database.schema", "public")
	v.SetDefault("database.connect_timeout", "5s")
	v.SetDefault("database.max_conns", 8)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_idle_conns", 4)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "5m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", LogFormatText)

	v.SetDefault("desk.action_timeout", "10s")
	v.SetDefault("desk.barcode", "1234567891026")

	v.SetDefault("http.addr", ":8080")

	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.service_name", "intellib")
	v.SetDefault("observability.trace_endpoint", "localhost:4317")
	v.SetDefault("observability.metric_endpoint", "localhost:4317")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values Load cannot default sensibly.
func (c *Config) Validate() error {
	switch c.Database.Adapter {
	case AdapterPGX, AdapterSQL, AdapterSQLX:
	default:
		return fmt.Errorf("%w: database.adapter must be one of pgx, sql, sqlx, got %q", ErrInvalidConfig, c.Database.Adapter)
	}

	if c.Database.Schema == "" {
		return fmt.Errorf("%w: database.schema must not be empty", ErrInvalidConfig)
	}

	if c.Database.ConnectTimeout <= 0 {
		return fmt.Errorf("%w: database.connect_timeout must be positive", ErrInvalidConfig)
	}

	if c.Desk.ActionTimeout <= 0 {
		return fmt.Errorf("%w: desk.action_timeout must be positive", ErrInvalidConfig)
	}

	switch c.Log.Format {
	case LogFormatJSON, LogFormatText:
	default:
		return fmt.Errorf("%w: log.format must be json or text, got %q", ErrInvalidConfig, c.Log.Format)
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}

	return nil
}
