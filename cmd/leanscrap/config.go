package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Built-in defaults used when neither flags nor the config file set a value.
const (
	DefaultConcurrency = 4
	DefaultAddr        = ":8080"
)

// Config represents the optional ~/.leanscrap/config.yaml file.
type Config struct {
	DB    string `yaml:"db"`
	Fetch struct {
		Timeout   time.Duration `yaml:"timeout"`
		UserAgent string        `yaml:"user_agent"`
		Browser   bool          `yaml:"browser"`
	} `yaml:"fetch"`
	Scrape struct {
		Concurrency int `yaml:"concurrency"`
	} `yaml:"scrape"`
	Serve struct {
		Addr string `yaml:"addr"`
	} `yaml:"serve"`
}

// LoadConfig reads the config file at path. A missing file yields an empty
// Config; a file that exists but cannot be parsed is an error.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Apply fills flags left at their zero value from the config file and then
// from built-in defaults.
func (cfg *Config) Apply(cli *CLI) {
	cli.DB = firstNonEmpty(cli.DB, cfg.DB, defaultDBPath())

	for _, f := range []*FetchFlags{&cli.Scrape.FetchFlags, &cli.Serve.FetchFlags} {
		f.Browser = f.Browser || cfg.Fetch.Browser
		if f.Timeout <= 0 {
			f.Timeout = cfg.Fetch.Timeout
		}
		f.UserAgent = firstNonEmpty(f.UserAgent, cfg.Fetch.UserAgent)
	}

	if cli.Scrape.Concurrency <= 0 {
		cli.Scrape.Concurrency = cfg.Scrape.Concurrency
	}
	if cli.Scrape.Concurrency <= 0 {
		cli.Scrape.Concurrency = DefaultConcurrency
	}
	cli.Serve.Addr = firstNonEmpty(cli.Serve.Addr, cfg.Serve.Addr, DefaultAddr)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func leanscrapDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".leanscrap")
}

func defaultDBPath() string {
	dir := leanscrapDir()
	if dir == "" {
		return "leanscrap.db"
	}
	return filepath.Join(dir, "leanscrap.db")
}

func defaultConfigPath() string {
	dir := leanscrapDir()
	if dir == "" {
		return "config.yaml"
	}
	return filepath.Join(dir, "config.yaml")
}
