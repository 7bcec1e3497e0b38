package imod

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	gojsonq "github.com/thedevsaddam/gojsonq/v2"
)

// Environment keys read by LoadConfig. A ~/.imod.env or ./.env file can
// provide them; variables already set in the environment win.
const (
	EnvTimeout = "IMOD_TIMEOUT"
	EnvHistory = "IMOD_HISTORY"
	EnvPresets = "IMOD_PRESETS"
	EnvLogFile = "IMOD_LOG"
)

// Config carries the ambient settings for an editor run.
type Config struct {
	RunTimeout  time.Duration // symbolic-run disambiguation window
	HistoryPath string        // SQLite change journal
	PresetsPath string        // presets file for -preset
	LogPath     string        // debug log destination, "" for stderr
}

// LoadConfig assembles configuration from env files and the environment.
// Missing env files are fine, and a malformed duration falls back to the
// default rather than failing startup.
func LoadConfig() Config {
	home, _ := os.UserHomeDir()
	if home != "" {
		_ = godotenv.Load(filepath.Join(home, ".imod.env"))
	}
	_ = godotenv.Load() // ./.env, if present

	cfg := Config{
		RunTimeout:  time.Second,
		HistoryPath: filepath.Join(home, ".imod_history.db"),
		PresetsPath: filepath.Join(home, ".imod_presets.json"),
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RunTimeout = d
		}
	}
	if v := os.Getenv(EnvHistory); v != "" {
		cfg.HistoryPath = v
	}
	if v := os.Getenv(EnvPresets); v != "" {
		cfg.PresetsPath = v
	}
	cfg.LogPath = os.Getenv(EnvLogFile)
	return cfg
}

// LookupPreset resolves a named mode from the presets file, which maps
// names to 3-digit octal strings:
//
//	{"presets": {"script": "755", "secret": "600"}}
func LookupPreset(path, name string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("imod: presets file: %w", err)
	}
	jq := gojsonq.New().File(path)
	v := jq.Find("presets." + name)
	if err := jq.Error(); err != nil {
		return "", fmt.Errorf("imod: preset %q: %w", name, err)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("imod: no preset %q in %s", name, path)
	}
	return s, nil
}
