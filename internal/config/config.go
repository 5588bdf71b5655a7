package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/pkg/mq"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/pkg/mysql"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/pkg/notifier"
	"github.com/spf13/viper"
)

const (
	envPrefix     = "MARKETPLACE"
	envConfigPath = "APP_CONFIG_PATH"

	PurchaseModeSaga          = "saga"
	PurchaseModeTransactional = "transactional"
)

type Config struct {
	API       API             `mapstructure:"api"`
	Auth      Auth            `mapstructure:"auth"`
	Database  mysql.Config    `mapstructure:"database"`
	RabbitMQ  mq.Config       `mapstructure:"rabbitmq"`
	Purchase  Purchase        `mapstructure:"purchase"`
	Publisher Publisher       `mapstructure:"publisher"`
	Notifier  notifier.Config `mapstructure:"notifier"`
	Metrics   Metrics         `mapstructure:"metrics"`
}

type API struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type Auth struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type Purchase struct {
	Mode string `mapstructure:"mode"`
}

type Publisher struct {
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
	Queue     string        `mapstructure:"queue"`
}

type Metrics struct {
	Interval time.Duration `mapstructure:"interval"`
}

func Load() (*Config, error) {
	return load(func(v *viper.Viper) error {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath("./config")
		if path := os.Getenv(envConfigPath); path != "" {
			v.AddConfigPath(path)
		}

		return v.ReadInConfig()
	})
}

// LoadFile reads the configuration from an explicit file path.
func LoadFile(path string) (*Config, error) {
	return load(func(v *viper.Viper) error {
		v.SetConfigFile(path)
		return v.ReadInConfig()
	})
}

func load(read func(v *viper.Viper) error) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := read(v); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.read_timeout", 10*time.Second)
	v.SetDefault("api.write_timeout", 10*time.Second)

	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.issuer", "")

	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("purchase.mode", PurchaseModeTransactional)

	v.SetDefault("publisher.interval", 5*time.Second)
	v.SetDefault("publisher.batch_size", 100)
	v.SetDefault("publisher.queue", mq.PurchaseCompletedQueue)

	v.SetDefault("notifier.enabled", false)
	v.SetDefault("notifier.timeout", 5*time.Second)
	v.SetDefault("notifier.max_retries", 3)
	v.SetDefault("notifier.retry_delay", time.Second)

	v.SetDefault("metrics.interval", 15*time.Second)
}

func (c *Config) Validate() error {
	switch c.Purchase.Mode {
	case PurchaseModeSaga, PurchaseModeTransactional:
	default:
		return fmt.Errorf("invalid purchase mode %q", c.Purchase.Mode)
	}

	if c.Auth.Secret == "" {
		return errors.New("auth secret is required")
	}

	if c.Publisher.BatchSize <= 0 {
		return errors.New("publisher batch size must be positive")
	}

	if c.Publisher.Queue == "" {
		return errors.New("publisher queue is required")
	}

	return nil
}

// Queues is the broker topology the workers declare before publishing or
// consuming.
func (c *Config) Queues() []string {
	return []string{c.Publisher.Queue}
}
