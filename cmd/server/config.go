package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Config is the server configuration file.
type Config struct {
	// Addr is the listen address.
	Addr string `yaml:"addr"`
	// DicPath is the mecab-ko-dic directory. Empty uses the engine default.
	DicPath string `yaml:"dicpath"`
	// MecabPath forces the mecab executable at this path as the engine.
	MecabPath string `yaml:"mecab_path"`
	// AllowedOrigins lists CORS origins. Empty allows all.
	AllowedOrigins []string `yaml:"allowed_origins"`
	// Debug switches to a development logger at debug level.
	Debug bool `yaml:"debug"`
}

func defaultConfig() Config {
	return Config{
		Addr: ":8080",
	}
}

// loadConfig reads path over the defaults. An empty path returns the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	if cfg.Addr == "" {
		return cfg, errors.Newf("config %s: addr must not be empty", path)
	}
	return cfg, nil
}
