package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jrjohn/docstore-users/internal/observability"
)

// EnvPrefix is the prefix for environment variable overrides (USERDATA_DATABASE_NAME, ...).
const EnvPrefix = "USERDATA"

// Config holds all application configuration
type Config struct {
	App       AppConfig                   `mapstructure:"app"`
	Server    ServerConfig                `mapstructure:"server"`
	Database  DatabaseConfig              `mapstructure:"database"`
	Log       LogConfig                   `mapstructure:"log"`
	Seed      SeedConfig                  `mapstructure:"seed"`
	Exercises ExercisesConfig             `mapstructure:"exercises"`
	Metrics   observability.MetricsConfig `mapstructure:"metrics"`
	Tracing   observability.TracingConfig `mapstructure:"tracing"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds MongoDB connection settings.
// URI wins over the individual host/port/credential fields when set.
type DatabaseConfig struct {
	URI            string        `mapstructure:"uri"`
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Name           string        `mapstructure:"name"`
	Collection     string        `mapstructure:"collection"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	AuthSource     string        `mapstructure:"auth_source"`
	ReplicaSet     string        `mapstructure:"replica_set"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// LogConfig holds logger settings. Level is re-read when the config file changes.
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// SeedConfig controls sample data loading on an empty collection.
type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// ExercisesConfig controls the classroom placeholders.
// When Stubbed is true, findAll, findByDepartment, search and countByDepartment
// answer "not implemented" on both variants.
type ExercisesConfig struct {
	Stubbed bool `mapstructure:"stubbed"`
}

// Loader reads configuration from file, .env and environment variables.
type Loader struct {
	v        *viper.Viper
	envFiles []string
}

// NewLoader creates a Loader searching the standard config locations.
func NewLoader() *Loader {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/user-data-service/")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	return &Loader{v: v, envFiles: []string{".env"}}
}

// Viper exposes the underlying viper instance.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load reads configuration from file and environment variables
func (l *Loader) Load() (*Config, error) {
	if err := godotenv.Load(l.envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return l.decode()
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Load reads configuration using the default Loader.
func Load() (*Config, error) {
	return NewLoader().Load()
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "user-data-service")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", true)

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Database defaults
	v.SetDefault("database.uri", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 27017)
	v.SetDefault("database.name", "teaching_db")
	v.SetDefault("database.collection", "users")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.auth_source", "")
	v.SetDefault("database.replica_set", "")
	v.SetDefault("database.connect_timeout", 10*time.Second)

	v.SetDefault("log.level", "debug")
	v.SetDefault("log.encoding", "console")

	v.SetDefault("seed.enabled", true)
	v.SetDefault("exercises.stubbed", false)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.service_name", "user-data-service")
	v.SetDefault("metrics.prometheus_path", "/metrics")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "user-data-service")
	v.SetDefault("tracing.service_version", "1.0.0")
	v.SetDefault("tracing.environment", "development")
	v.SetDefault("tracing.exporter_type", "stdout")
	v.SetDefault("tracing.otlp_endpoint", "localhost:4317")
	v.SetDefault("tracing.otlp_insecure", true)
	v.SetDefault("tracing.sampling_rate", 1.0)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.Collection == "" {
		return fmt.Errorf("database collection is required")
	}
	if c.Database.URI == "" && c.Database.Port <= 0 {
		return fmt.Errorf("database port must be positive")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server port must be positive")
	}
	return nil
}

// MongoURI returns the MongoDB connection URI.
func (c *DatabaseConfig) MongoURI() string {
	if c.URI != "" {
		return c.URI
	}
	if c.User != "" && c.Password != "" {
		uri := fmt.Sprintf("mongodb://%s:%s@%s:%d/%s",
			c.User, c.Password, c.Host, c.Port, c.Name)
		return c.appendMongoOptions(uri)
	}
	uri := fmt.Sprintf("mongodb://%s:%d/%s", c.Host, c.Port, c.Name)
	return c.appendMongoOptions(uri)
}

// appendMongoOptions adds optional query parameters to the MongoDB URI.
func (c *DatabaseConfig) appendMongoOptions(uri string) string {
	params := []string{}
	if c.AuthSource != "" {
		params = append(params, "authSource="+c.AuthSource)
	}
	if c.ReplicaSet != "" {
		params = append(params, "replicaSet="+c.ReplicaSet)
	}
	if len(params) > 0 {
		uri += "?" + strings.Join(params, "&")
	}
	return uri
}
