// Package config also loads .env files and the per-user report settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	once      sync.Once
	loadedEnv string
	envErr    error
)

// LoadEnv loads environment variables from a .env file in the working
// directory or its parent. It runs once per process and returns the file it
// loaded, or "" when there was none.
func LoadEnv() (string, error) {
	once.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				return
			}
		}

		if err := godotenv.Load(envFile); err != nil {
			envErr = fmt.Errorf("error loading %s: %w", envFile, err)
			return
		}
		loadedEnv = envFile
	})
	return loadedEnv, envErr
}

// UserSettings holds the currencies and tickers shown on the overview.
type UserSettings struct {
	Currencies []string `mapstructure:"user_currencies" json:"user_currencies" yaml:"user_currencies"`
	Stocks     []string `mapstructure:"user_stocks" json:"user_stocks" yaml:"user_stocks"`
}

// LoadUserSettings reads a user settings file (JSON unless the extension
// says otherwise). Codes are trimmed and upper-cased; blanks are dropped.
func LoadUserSettings(path string) (*UserSettings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read user settings %s: %w", path, err)
	}

	var settings UserSettings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user settings %s: %w", path, err)
	}

	settings.Currencies = normalizeCodes(settings.Currencies)
	settings.Stocks = normalizeCodes(settings.Stocks)
	return &settings, nil
}

func normalizeCodes(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			out = append(out, code)
		}
	}
	return out
}
