package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	gologging "github.com/op/go-logging"

	"hackman-bot/engine"
)

var (
	cfgFile     = "hackman-bot/config.json"
	historyFile = "hackman-bot/history.db"
)

// Environment variables overriding the config file.
const (
	EnvStrategy     = "HACKMAN_STRATEGY"
	EnvSeed         = "HACKMAN_SEED"
	EnvLogLevel     = "HACKMAN_LOG_LEVEL"
	EnvHistory      = "HACKMAN_HISTORY"
	EnvHistoryDB    = "HACKMAN_HISTORY_DB"
	EnvMQTTBroker   = "HACKMAN_MQTT_BROKER"
	EnvMQTTTopic    = "HACKMAN_MQTT_TOPIC"
	EnvMQTTClientID = "HACKMAN_MQTT_CLIENT_ID"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type StrategyConfig struct {
	Name string `json:"name"`
	Seed int64  `json:"seed"` // 0 seeds from the clock
}

type HistoryConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"` // empty uses the XDG data dir
}

// MirrorConfig enables publishing decisions to an MQTT broker when Broker is set.
type MirrorConfig struct {
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Topic    string `json:"topic"`
}

type LogConfig struct {
	Level string `json:"level"`
}

// CellStyle is how one field token is drawn in the replay browser.
type CellStyle struct {
	Symbol rune `json:"symbol"`
	Color  int  `json:"color"`
}

type Theme struct {
	Cells       map[string]CellStyle `json:"cells"`
	Unknown     CellStyle            `json:"unknown"`
	OwnBotColor int                  `json:"own_bot_color"`
	BorderColor int                  `json:"border_color"`
}

type Config struct {
	Strategy StrategyConfig `json:"strategy"`
	History  HistoryConfig  `json:"history"`
	Mirror   MirrorConfig   `json:"mirror"`
	Log      LogConfig      `json:"log"`
	Theme    Theme          `json:"theme"`
}

// InitConfig loads .env, the XDG config file if one exists and environment
// overrides, in that order.
func InitConfig() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	path, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		path = ""
	}
	return Load(path)
}

// Load builds a config from the defaults, the JSON file at path (skipped when
// path is empty or missing) and the environment.
func Load(path string) (*Config, error) {
	config := DefaultConfig()
	if path != "" {
		if err := readCfgFile(path, config); err != nil {
			return nil, err
		}
	}
	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if _, err := engine.New(c.Strategy.Name, 0); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if _, err := gologging.LogLevel(c.Log.Level); err != nil {
		return &InvalidConfig{fmt.Sprintf("log level %q: %v", c.Log.Level, err)}
	}
	if c.Mirror.Broker != "" && c.Mirror.Topic == "" {
		return &InvalidConfig{"mirror topic must be set when a broker is configured"}
	}
	for token, style := range c.Theme.Cells {
		r := style.Symbol
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{fmt.Sprintf("symbol for %q: Unicode characters 1-31 and 127-159 are not allowed", token)}
		}
	}
	return nil
}

// HistoryPath returns the database path for session history, creating the
// XDG data directory when no explicit path is configured.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	return xdg.DataFile(historyFile)
}

// Save writes the config to the XDG config dir and returns the file path.
func (c *Config) Save() (string, error) {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", err
	}
	return absPath, saveCfgFile(absPath, c, 0664)
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvStrategy); v != "" {
		c.Strategy.Name = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return &InvalidConfig{fmt.Sprintf("%s=%q is not an integer", EnvSeed, v)}
		}
		c.Strategy.Seed = seed
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvHistory); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return &InvalidConfig{fmt.Sprintf("%s=%q is not a boolean", EnvHistory, v)}
		}
		c.History.Enabled = enabled
	}
	if v := os.Getenv(EnvHistoryDB); v != "" {
		c.History.Path = v
	}
	if v := os.Getenv(EnvMQTTBroker); v != "" {
		c.Mirror.Broker = v
	}
	if v := os.Getenv(EnvMQTTTopic); v != "" {
		c.Mirror.Topic = v
	}
	if v := os.Getenv(EnvMQTTClientID); v != "" {
		c.Mirror.ClientID = v
	}
	return nil
}

// loadDotEnv sets variables from a .env file without overriding ones already
// present in the environment. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &InvalidConfig{fmt.Sprintf("%s: %v", path, err)}
	}
	return nil
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
