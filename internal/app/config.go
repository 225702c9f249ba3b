package app

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Поддерживаемые драйверы хранения.
const (
	StorageDriverJSON     = "json"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения. Значения читаются из
// переменных окружения с префиксом BAKERY; без них работают значения
// по умолчанию — каталог datos рядом с бинарём, как раньше.
type Config struct {
	DataDir       string `envconfig:"DATA_DIR" default:"datos"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"json"`
	PostgresDSN   string `envconfig:"POSTGRES_DSN" default:""`
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() Config {
	return Config{
		DataDir:       "datos",
		LogLevel:      "info",
		StorageDriver: StorageDriverJSON,
	}
}

// ReadConfig собирает конфигурацию из окружения и проверяет её.
func ReadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("bakery", &cfg); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverJSON:
	case StorageDriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("config: BAKERY_POSTGRES_DSN is required for postgres driver")
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.StorageDriver)
	}
	return nil
}
