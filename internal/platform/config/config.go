package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"
	StorageSQLite   StorageDriver = "sqlite"
	StoragePostgres StorageDriver = "postgres"
)

// Config se lee una vez al arrancar: archivo YAML opcional (PETHOUSE_CONFIG)
// y encima las variables de entorno.
type Config struct {
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`

	// Mensajes por minuto por cliente en /assistant.
	AssistantRatePerMinute int `yaml:"assistant_rate_per_minute"`
}

type StorageConfig struct {
	Driver     StorageDriver `yaml:"driver"`
	SQLitePath string        `yaml:"sqlite_path"`
	DSN        string        `yaml:"dsn"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

func Default() Config {
	return Config{
		Port:         "8080",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		Storage: StorageConfig{
			Driver:     StorageMemory,
			SQLitePath: "pet-house.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "pet-house",
		},
		AssistantRatePerMinute: 30,
	}
}

// Load arma la configuración desde PETHOUSE_CONFIG (si existe) y el entorno.
func Load() (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("PETHOUSE_CONFIG")); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.Port = getEnvString("PORT", cfg.Port)
	cfg.ReadTimeout = getEnvDuration("READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = getEnvDuration("WRITE_TIMEOUT", cfg.WriteTimeout)
	cfg.Storage.Driver = StorageDriver(strings.ToLower(getEnvString("STORAGE_DRIVER", string(cfg.Storage.Driver))))
	cfg.Storage.SQLitePath = getEnvString("SQLITE_PATH", cfg.Storage.SQLitePath)
	cfg.Storage.DSN = getEnvString("DB_DSN", cfg.Storage.DSN)
	cfg.Log.Level = getEnvString("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnvString("LOG_FORMAT", cfg.Log.Format)
	cfg.Log.App = getEnvString("APP_NAME", cfg.Log.App)
	cfg.AssistantRatePerMinute = getEnvInt("ASSISTANT_RATE_PER_MINUTE", cfg.AssistantRatePerMinute)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory:
	case StorageSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return fmt.Errorf("config: sqlite storage requires SQLITE_PATH")
		}
	case StoragePostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("config: postgres storage requires DB_DSN")
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.AssistantRatePerMinute <= 0 {
		return fmt.Errorf("config: assistant rate must be positive")
	}
	return nil
}

// Addr devuelve la dirección de escucha (":8080").
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func getEnvString(key, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
