package main

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all pagelens server configuration.
type Config struct {
	Addr          string `yaml:"addr"`
	DBPath        string `yaml:"db_path"`
	ScreenshotDir string `yaml:"screenshot_dir"`
	SnapshotDir   string `yaml:"snapshot_dir"`
	RecentLimit   int    `yaml:"recent_limit"`

	Browser BrowserConfig `yaml:"browser"`
}

// BrowserConfig controls the Chrome capture layer.
type BrowserConfig struct {
	ChromeURL       string        `yaml:"chrome_url"` // remote DevTools URL; empty launches locally
	NavigateTimeout time.Duration `yaml:"navigate_timeout"`
	SettleDelay     time.Duration `yaml:"settle_delay"`
	RecycleInterval time.Duration `yaml:"recycle_interval"`
}

func (c *Config) defaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.DBPath == "" {
		c.DBPath = "data/pagelens.db"
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "data/screenshots"
	}
	if c.SnapshotDir == "" {
		c.SnapshotDir = "data/snapshots"
	}
	if c.RecentLimit <= 0 {
		c.RecentLimit = 20
	}
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv lets single env vars override file values, for container deploys.
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Addr = ":" + v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("CHROME_URL"); v != "" {
		c.Browser.ChromeURL = v
	}
	if v := os.Getenv("SCREENSHOT_DIR"); v != "" {
		c.ScreenshotDir = v
	}
	if v := os.Getenv("SNAPSHOT_DIR"); v != "" {
		c.SnapshotDir = v
	}
}
