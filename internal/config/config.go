package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/stayhub/StayHub-BookingService/internal/domain"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	PropertyService IntegrationConfig     `toml:"property_service"`
	GuestService    IntegrationConfig     `toml:"guest_service"`
	Booking         BookingConfig         `toml:"booking"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// IntegrationConfig настройки внешнего HTTP-сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig бизнес-настройки движка бронирования
type BookingConfig struct {
	// PaymentWindowMinutes окно оплаты: столько минут есть у гостя на
	// подтверждение оплаты после перехода в awaiting_payment
	PaymentWindowMinutes int `toml:"payment_window_minutes"`

	// SweepIntervalSeconds период фонового sweep'а (expire/complete)
	SweepIntervalSeconds int `toml:"sweep_interval_seconds"`

	// SweepEnabled выключает встроенный планировщик, если sweep
	// запускается внешним cron'ом через POST /internal/sweeps
	SweepEnabled bool `toml:"sweep_enabled"`

	// Currency валюта всех расчетов (минорные единицы)
	Currency string `toml:"currency"`
}

// Load загружает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Booking.PaymentWindowMinutes <= 0 {
		c.Booking.PaymentWindowMinutes = domain.DefaultPaymentWindowMinutes
	}
	if c.Booking.SweepIntervalSeconds <= 0 {
		c.Booking.SweepIntervalSeconds = domain.DefaultSweepIntervalSeconds
	}
	if c.Booking.Currency == "" {
		c.Booking.Currency = domain.DefaultCurrency
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "booking-service"
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.PropertyService.URL == "" {
		return fmt.Errorf("config: property_service.url is required")
	}
	if c.GuestService.URL == "" {
		return fmt.Errorf("config: guest_service.url is required")
	}
	return nil
}
