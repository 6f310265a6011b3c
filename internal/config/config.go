// Package config загружает настройки commentboard: значения по умолчанию, необязательный файл и окружение.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix - префикс переменных окружения, например COMMENTBOARD_SERVER_ADDR
const EnvPrefix = "COMMENTBOARD"

// Config - полная конфигурация commentboard
type Config struct {
	Server ServerConfig `json:"server" mapstructure:"server"`
	Seed   SeedConfig   `json:"seed" mapstructure:"seed"`
	Render RenderConfig `json:"render" mapstructure:"render"`
	Log    LogConfig    `json:"log" mapstructure:"log"`
}

// ServerConfig - настройки HTTP-сервера
type ServerConfig struct {
	Addr           string   `json:"addr" mapstructure:"addr"`
	Mode           string   `json:"mode" mapstructure:"mode"`
	AllowedOrigins []string `json:"allowedOrigins" mapstructure:"allowed_origins"`
	SSL            bool     `json:"ssl" mapstructure:"ssl"`
}

// SeedConfig - страница, создаваемая при старте; пустое имя отключает создание
type SeedConfig struct {
	Page string `json:"page" mapstructure:"page"`
}

// RenderConfig - настройки рендеринга страниц
type RenderConfig struct {
	EscapeHTML bool `json:"escapeHtml" mapstructure:"escape_html"`
}

// LogConfig - настройки логгера zap
type LogConfig struct {
	Development bool   `json:"development" mapstructure:"development"`
	Level       string `json:"level" mapstructure:"level"`
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			Mode:           gin.ReleaseMode,
			AllowedOrigins: []string{"*"},
		},
		Seed: SeedConfig{Page: "hello-world"},
		Log:  LogConfig{Level: "info"},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("server.ssl", d.Server.SSL)
	v.SetDefault("seed.page", d.Seed.Page)
	v.SetDefault("render.escape_html", d.Render.EscapeHTML)
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("log.level", d.Log.Level)
}

// Load читает конфигурацию. Если path пустой, используются только значения
// по умолчанию и переменные окружения.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// COMMENTBOARD_SEED_PAGE="" должен отключать начальную страницу
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
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

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	switch c.Server.Mode {
	case gin.ReleaseMode, gin.DebugMode, gin.TestMode:
	default:
		return fmt.Errorf("server.mode %q is not one of release, debug, test", c.Server.Mode)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
