package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the converter configuration.
type Config struct {
	LogLevel  LogLeveler `mapstructure:"LOG_LEVEL"`
	HTTP      HTTP       `mapstructure:",squash"`
	Redis     Redis      `mapstructure:",squash"`
	Converter Converter  `mapstructure:",squash"`
	Archive   Archive    `mapstructure:",squash"`
}

type HTTP struct {
	Port    int           `mapstructure:"HTTP_PORT"`
	Timeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

// Redis is optional; an empty address disables the cache and the rate limit.
type Redis struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	Timeout  time.Duration `mapstructure:"REDIS_TIMEOUT"`
}

type Converter struct {
	CacheExpiration  time.Duration `mapstructure:"CONVERTER_CACHE_EXPIRATION"`
	LockTimeout      time.Duration `mapstructure:"CONVERTER_LOCK_TIMEOUT"`
	MaxDocumentBytes int64         `mapstructure:"CONVERTER_MAX_DOCUMENT_BYTES"`
	RateLimitRPS     int           `mapstructure:"CONVERTER_RATE_LIMIT_RPS"`
}

// Archive is optional; an empty path disables the conversion history.
type Archive struct {
	DBPath string `mapstructure:"ARCHIVE_DB_PATH"`
}
