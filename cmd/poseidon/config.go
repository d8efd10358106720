package main

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/Giulio2002/faster_poseidon/internal/log"
)

const (
	formatDec = "dec"
	formatHex = "hex"
)

// Config holds the settings shared by all commands. Values come from the
// defaults, then the optional TOML file, then flags and environment.
type Config struct {
	LogLevel string `toml:"log_level"`
	JSONLogs bool   `toml:"json_logs"`
	Workers  int    `toml:"workers"`
	Format   string `toml:"format"`
}

func defaultConfig() Config {
	return Config{
		LogLevel: "info",
		Format:   formatDec,
	}
}

// loadConfigFile overlays the keys present in the TOML file at path onto cfg.
func loadConfigFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Wrapf(err, "reading config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

func contextToConfig(c *cli.Context) (Config, error) {
	cfg := defaultConfig()
	if c.IsSet(configFlag.Name) {
		if err := loadConfigFile(c.String(configFlag.Name), &cfg); err != nil {
			return cfg, err
		}
	}
	if c.IsSet(logLevelFlag.Name) {
		cfg.LogLevel = c.String(logLevelFlag.Name)
	}
	if c.IsSet(jsonLogsFlag.Name) {
		cfg.JSONLogs = c.Bool(jsonLogsFlag.Name)
	}
	if c.IsSet(formatFlag.Name) {
		cfg.Format = c.String(formatFlag.Name)
	}
	if c.IsSet(workersFlag.Name) {
		cfg.Workers = c.Int(workersFlag.Name)
	}

	if cfg.Format != formatDec && cfg.Format != formatHex {
		return cfg, errors.Errorf("format %q is not one of %s, %s", cfg.Format, formatDec, formatHex)
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return cfg, err
	}
	return cfg, nil
}
