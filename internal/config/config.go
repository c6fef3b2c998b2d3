package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	EnvConfigPath = "PNGME_CONFIG"
	EnvLogLevel   = "PNGME_LOG_LEVEL"
	EnvLogNoColor = "PNGME_LOG_NOCOLOR"
)

// Config is the pngme runtime configuration.
type Config struct {
	LogLevel string
	NoColor  bool

	// Overwrite makes encode replace an existing chunk of the same type
	// instead of refusing.
	Overwrite bool
	// Textual renders tEXt and zTXt chunks as keyword=text when printing.
	Textual   bool
	// Summary prints a chunk count and file size header when printing.
	Summary   bool
}

type fileConfig struct {
	LogLevel  string `toml:"log_level"`
	NoColor   bool   `toml:"no_color"`
	Overwrite bool   `toml:"overwrite"`
	Textual   bool   `toml:"textual"`
	Summary   bool   `toml:"summary"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
	}
}

// Load reads the TOML file at path over the defaults and then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		var raw fileConfig
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return Config{}, fmt.Errorf("load pngme config (%s): %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("load pngme config (%s): unknown key %q", path, undecoded[0].String())
		}

		if meta.IsDefined("log_level") {
			cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
		}
		if meta.IsDefined("no_color") {
			cfg.NoColor = raw.NoColor
		}
		if meta.IsDefined("overwrite") {
			cfg.Overwrite = raw.Overwrite
		}
		if meta.IsDefined("textual") {
			cfg.Textual = raw.Textual
		}
		if meta.IsDefined("summary") {
			cfg.Summary = raw.Summary
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// ResolvePath picks the explicit path if given, else the environment.
func ResolvePath(flagPath string) string {
	if p := strings.TrimSpace(flagPath); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(EnvConfigPath))
}

func applyEnvOverrides(cfg *Config) {
	if lvl := strings.TrimSpace(os.Getenv(EnvLogLevel)); lvl != "" {
		cfg.LogLevel = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
