// Package settings loads the user preferences consulted by the dashboard
// view: which currencies and stocks to quote.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
)

// Settings are the user's market data preferences.
type Settings struct {
	UserCurrencies []string `json:"user_currencies"`
	UserStocks     []string `json:"user_stocks"`
}

// Default returns the settings used when no file is configured.
func Default() Settings {
	return Settings{
		UserCurrencies: []string{"USD", "EUR"},
		UserStocks:     []string{},
	}
}

// Load reads settings from a JSON file. A missing file falls back to the
// defaults; a malformed file is an error.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("read settings file: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings file: %w", err)
	}
	if s.UserCurrencies == nil {
		s.UserCurrencies = []string{}
	}
	if s.UserStocks == nil {
		s.UserStocks = []string{}
	}
	return s, nil
}
