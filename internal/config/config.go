package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server           Server           `toml:"server"`
	Database         Database         `toml:"database"`
	Logs             Logs             `toml:"logs"`
	Metrics          Metrics          `toml:"metrics"`
	DirectoryService DirectoryService `toml:"directory_service"`
	NotifyService    NotifyService    `toml:"notify_service"`
	Cascade          Cascade          `toml:"cascade"`
	Worker           Worker           `toml:"worker"`
}

// Server настройки HTTP сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// Database настройки подключения к PostgreSQL
type Database struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к базе данных
func (d *Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics настройки Prometheus метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// DirectoryService настройки клиента DirectoryService
type DirectoryService struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// NotifyService настройки клиента NotifyService
type NotifyService struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Cascade настройки диспетчера каскада освобождённых слотов
type Cascade struct {
	QueueSize        int `toml:"queue_size"`
	EnqueueTimeoutMS int `toml:"enqueue_timeout_ms"`
}

// Worker настройки фоновых задач
type Worker struct {
	OfferExpiryIntervalSeconds int `toml:"offer_expiry_interval_seconds"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return &cfg, nil
}
