package config

import (
	"fmt"
	"time"
)

// Config holds the application configuration.
type Config struct {
	APIKey         string        `mapstructure:"api_key"`
	APIRoot        string        `mapstructure:"api_root"`
	Model          string        `mapstructure:"model"`
	ListenAddress  string        `mapstructure:"listen_address"`
	Port           int           `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// Addr is the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ListenAddress, c.Port)
}
