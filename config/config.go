package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultPort           = 3000
	DefaultListenAddress  = "0.0.0.0"
	DefaultAPIRoot        = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel          = "gemini-2.0-flash"
	DefaultRequestTimeout = 30 * time.Second
)

// Environment variables read in addition to the config file.
var envKeys = map[string]string{
	"api_key":         "GEMINI_API_KEY",
	"port":            "PORT",
	"listen_address":  "LISTEN_ADDRESS",
	"api_root":        "GEMINI_API_ROOT",
	"model":           "GEMINI_MODEL",
	"request_timeout": "REQUEST_TIMEOUT",
	"allowed_origins": "ALLOWED_ORIGINS",
}

// LoadEnvFile loads variables from a .env file in the working directory, if there is one.
// Variables already set in the environment win.
func LoadEnvFile() bool {
	return godotenv.Load() == nil
}

// LoadConfig builds the configuration from defaults, the optional config file, the
// environment and any changed flags in fs (in increasing order of precedence).
// configFile and fs may both be empty.
func LoadConfig(configFile string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", DefaultPort)
	v.SetDefault("listen_address", DefaultListenAddress)
	v.SetDefault("api_root", DefaultAPIRoot)
	v.SetDefault("model", DefaultModel)
	v.SetDefault("request_timeout", DefaultRequestTimeout)
	v.SetDefault("allowed_origins", []string{"*"})

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if fs != nil {
		if f := fs.Lookup("port"); f != nil {
			if err := v.BindPFlag("port", f); err != nil {
				return nil, fmt.Errorf("error binding port flag: %w", err)
			}
		}
	}

	var configuration Config
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := configuration.validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

func (c *Config) validate() error {
	if c.APIKey == "" {
		return errors.New("api_key is required (set GEMINI_API_KEY)")
	}
	if c.APIRoot == "" {
		return errors.New("api_root must not be empty")
	}
	if c.Model == "" {
		return errors.New("model must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
