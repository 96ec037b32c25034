package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Download DownloadConfig `mapstructure:"download" yaml:"download"`
	Sources  SourcesConfig  `mapstructure:"sources" yaml:"sources"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Store    StoreConfig    `mapstructure:"store" yaml:"store"`

	Port string `mapstructure:"port" yaml:"port"`
}

type DownloadConfig struct {
	BaseDir              string        `mapstructure:"base_dir" yaml:"base_dir"`
	MaxRetries           int           `mapstructure:"max_retries" yaml:"max_retries"`
	PauseBetweenRequests time.Duration `mapstructure:"pause_between_requests" yaml:"pause_between_requests"`
	RetryBackoff         time.Duration `mapstructure:"retry_backoff" yaml:"retry_backoff"`
	HTTPTimeout          time.Duration `mapstructure:"http_timeout" yaml:"http_timeout"`
}

type SourcesConfig struct {
	MainBaseURL       string `mapstructure:"main_base_url" yaml:"main_base_url"`
	DictionaryBaseURL string `mapstructure:"dictionary_base_url" yaml:"dictionary_base_url"`
}

type LogConfig struct {
	Path          string `mapstructure:"path" yaml:"path"`
	Level         string `mapstructure:"level" yaml:"level"`
	IncludeStdout bool   `mapstructure:"include_stdout" yaml:"include_stdout"`
}

type StoreConfig struct {
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

func Load(path string) (*Config, error) {

	if path == "" {
		path = "config.yaml"
	}

	v := viper.New()

	// Set Defaults
	v.SetDefault("port", "8080")
	v.SetDefault("download.base_dir", "./form5500_data")
	v.SetDefault("download.max_retries", 3)
	v.SetDefault("download.pause_between_requests", "2s")
	v.SetDefault("download.retry_backoff", "10s")
	v.SetDefault("download.http_timeout", "5m")
	v.SetDefault("sources.main_base_url", "https://askebsa.dol.gov/FOIA%20Files")
	v.SetDefault("sources.dictionary_base_url", "https://www.dol.gov/sites/dolgov/files/EBSA/researchers/data/retirement-bulletins")
	v.SetDefault("log.path", "efastdl.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.include_stdout", true)
	v.SetDefault("store.sqlite_path", "efastdl.db")

	// The config file is optional: every knob has a default and can be
	// overridden from the environment.
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else if path != "config.yaml" {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	// Support Environment Variables
	v.SetEnvPrefix("EFASTDL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Download.BaseDir == "" {
		return fmt.Errorf("download.base_dir is required")
	}

	if c.Sources.MainBaseURL == "" {
		return fmt.Errorf("sources.main_base_url is required")
	}

	if c.Sources.DictionaryBaseURL == "" {
		return fmt.Errorf("sources.dictionary_base_url is required")
	}

	if c.Download.MaxRetries < 1 {
		// A retry count below one would mean never fetching at all
		c.Download.MaxRetries = 1
	}

	if c.Download.HTTPTimeout <= 0 {
		c.Download.HTTPTimeout = 5 * time.Minute
	}

	// Trailing slashes break URL construction
	c.Sources.MainBaseURL = strings.TrimRight(c.Sources.MainBaseURL, "/")
	c.Sources.DictionaryBaseURL = strings.TrimRight(c.Sources.DictionaryBaseURL, "/")

	return nil
}
