package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration outside the model subsystem
// (which loads itself from TASKFLOW_LLM_* variables).
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Cache  CacheConfig  `yaml:"cache"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type CacheConfig struct {
	Size       int `yaml:"size"`
	TTLSeconds int `yaml:"ttl_seconds"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		DB:     DBConfig{Path: "taskflow.db"},
		Cache:  CacheConfig{Size: 256, TTLSeconds: 120},
	}
}

// Load reads an optional YAML file and applies environment overrides on top.
// A missing file is not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("reading config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if cfg.Cache.Size <= 0 {
		cfg.Cache.Size = Default().Cache.Size
	}
	if cfg.Cache.TTLSeconds <= 0 {
		cfg.Cache.TTLSeconds = Default().Cache.TTLSeconds
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TASKFLOW_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TASKFLOW_DB_PATH"); v != "" {
		cfg.DB.Path = v
	}
	if v := os.Getenv("TASKFLOW_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Cache.Size = n
		}
	}
	if v := os.Getenv("TASKFLOW_CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Cache.TTLSeconds = n
		}
	}
}
