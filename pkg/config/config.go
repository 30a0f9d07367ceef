// Package config loads dashboard defaults from a TOML file. Flags always
// win over the config file; the file covers deployment-level settings
// (bind address, Redis) that are awkward to repeat on every invocation.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Redis configures the optional shared session store.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Config holds dashboard defaults.
type Config struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	Layout    string `toml:"layout"`
	ColorBy   string `toml:"color_by"`
	Neighbors string `toml:"neighbors"`
	Redis     Redis  `toml:"redis"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Host:      "127.0.0.1",
		Port:      8050,
		Layout:    "circle",
		Neighbors: "both",
	}
}

// Load reads a TOML config file, layering it over the defaults.
// Unknown keys are rejected so typos surface immediately.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}

	return cfg, nil
}
