package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"bizledger/internal/domain"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Auth      AuthConfig      `yaml:"auth"`
	Ledger    LedgerConfig    `yaml:"ledger"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
}

type ServerConfig struct {
	Port           int           `yaml:"port"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// File enables a rotating JSON log file next to stdout when set.
	File string `yaml:"file"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwtSecret"`
	TokenTTL  time.Duration `yaml:"tokenTTL"`
}

type LedgerConfig struct {
	TxTimeout         time.Duration `yaml:"txTimeout"`
	MaxRetryAttempts  int           `yaml:"maxRetryAttempts"`
	StockPolicy       string        `yaml:"stockPolicy"`
	OverpaymentPolicy string        `yaml:"overpaymentPolicy"`
	ReceivingPolicy   string        `yaml:"receivingPolicy"`
}

type ReconcileConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"`
}

// Policies holds the parsed ledger policies.
type Policies struct {
	Stock       domain.StockPolicy
	Overpayment domain.OverpaymentPolicy
	Receiving   domain.ReceivingPolicy
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("SERVER_REQUEST_TIMEOUT", "15s")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "bizledger")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "bizledger")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("AUTH_JWT_SECRET", "")
	viper.SetDefault("AUTH_TOKEN_TTL", "12h")
	viper.SetDefault("LEDGER_TX_TIMEOUT", "5s")
	viper.SetDefault("LEDGER_MAX_RETRY_ATTEMPTS", 1)
	viper.SetDefault("LEDGER_STOCK_POLICY", string(domain.StockPolicyReject))
	viper.SetDefault("LEDGER_OVERPAYMENT_POLICY", string(domain.OverpaymentReject))
	viper.SetDefault("LEDGER_RECEIVING_POLICY", string(domain.ReceivingIdempotent))
	viper.SetDefault("RECONCILE_ENABLED", true)
	viper.SetDefault("RECONCILE_SCHEDULE", "@every 1h")

	durations := map[string]time.Duration{}
	for _, key := range []string{"SERVER_REQUEST_TIMEOUT", "DB_CONN_MAX_LIFETIME", "AUTH_TOKEN_TTL", "LEDGER_TX_TIMEOUT"} {
		d, err := time.ParseDuration(viper.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", key, err)
		}
		durations[key] = d
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           viper.GetInt("SERVER_PORT"),
			RequestTimeout: durations["SERVER_REQUEST_TIMEOUT"],
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: durations["DB_CONN_MAX_LIFETIME"],
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
			File:  viper.GetString("LOG_FILE"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("AUTH_JWT_SECRET"),
			TokenTTL:  durations["AUTH_TOKEN_TTL"],
		},
		Ledger: LedgerConfig{
			TxTimeout:         durations["LEDGER_TX_TIMEOUT"],
			MaxRetryAttempts:  viper.GetInt("LEDGER_MAX_RETRY_ATTEMPTS"),
			StockPolicy:       viper.GetString("LEDGER_STOCK_POLICY"),
			OverpaymentPolicy: viper.GetString("LEDGER_OVERPAYMENT_POLICY"),
			ReceivingPolicy:   viper.GetString("LEDGER_RECEIVING_POLICY"),
		},
		Reconcile: ReconcileConfig{
			Enabled:  viper.GetBool("RECONCILE_ENABLED"),
			Schedule: viper.GetString("RECONCILE_SCHEDULE"),
		},
	}

	return cfg, nil
}

// Validate checks values that cannot be defaulted sensibly.
func (c *Config) Validate() error {
	if c.Ledger.TxTimeout <= 0 {
		return fmt.Errorf("ledger tx timeout must be positive")
	}
	if c.Ledger.MaxRetryAttempts < 1 {
		return fmt.Errorf("ledger max retry attempts must be at least 1")
	}
	if _, err := c.Policies(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Policies() (Policies, error) {
	stock, err := domain.ParseStockPolicy(c.Ledger.StockPolicy)
	if err != nil {
		return Policies{}, err
	}
	overpayment, err := domain.ParseOverpaymentPolicy(c.Ledger.OverpaymentPolicy)
	if err != nil {
		return Policies{}, err
	}
	receiving, err := domain.ParseReceivingPolicy(c.Ledger.ReceivingPolicy)
	if err != nil {
		return Policies{}, err
	}
	return Policies{Stock: stock, Overpayment: overpayment, Receiving: receiving}, nil
}
