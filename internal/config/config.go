// Package config loads application configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chmouel/gitdojo/internal/theme"
	"gopkg.in/yaml.v3"
)

// AppConfig defines the global gitdojo configuration options.
type AppConfig struct {
	ScenarioDir     string // extra directory of scenario YAML files
	DefaultScenario string // scenario ID or path used when none is given
	Theme           string
	DebugLog        string
	LogLevel        string
	ShowGraph       bool
	ShowIcons       bool // Nerd Font icons in the files pane
	Prompt          string
	HistoryLimit    int // terminal lines kept in the TUI, 0 keeps all
	WatchScenarios  bool
	HashLength      int
	Path            string `yaml:"-"` // file the config was read from
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		DefaultScenario: "",
		LogLevel:        "info",
		ShowGraph:       true,
		ShowIcons:       true,
		Prompt:          "$ ",
		HistoryLimit:    500,
		HashLength:      7,
	}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func coerceInt(value any, defaultVal int) int {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return defaultVal
	case int:
		return v
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if i, err := strconv.Atoi(text); err == nil {
			return i
		}
	}
	return defaultVal
}

func trimmedString(data map[string]any, key string) (string, bool) {
	s, ok := data[key].(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()

	if dir, ok := trimmedString(data, "scenario_dir"); ok {
		cfg.ScenarioDir = dir
	}
	if id, ok := trimmedString(data, "default_scenario"); ok {
		cfg.DefaultScenario = id
	}
	if debugLog, ok := trimmedString(data, "debug_log"); ok {
		cfg.DebugLog = debugLog
	}
	if level, ok := trimmedString(data, "log_level"); ok {
		level = strings.ToLower(level)
		switch level {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = level
		}
	}
	if themeName, ok := data["theme"].(string); ok {
		if normalized := theme.Normalize(themeName); normalized != "" {
			cfg.Theme = normalized
		}
	}
	// prompts keep their trailing space, so no trimming here
	if prompt, ok := data["prompt"].(string); ok && strings.TrimSpace(prompt) != "" {
		cfg.Prompt = prompt
	}

	cfg.ShowGraph = coerceBool(data["show_graph"], cfg.ShowGraph)
	cfg.ShowIcons = coerceBool(data["show_icons"], cfg.ShowIcons)
	cfg.WatchScenarios = coerceBool(data["watch_scenarios"], cfg.WatchScenarios)
	cfg.HistoryLimit = coerceInt(data["history_limit"], cfg.HistoryLimit)
	cfg.HashLength = coerceInt(data["hash_length"], cfg.HashLength)

	if cfg.HistoryLimit < 0 {
		cfg.HistoryLimit = 0
	}
	if cfg.HashLength < 4 || cfg.HashLength > 40 {
		cfg.HashLength = DefaultConfig().HashLength
	}

	return cfg
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// DefaultPaths returns the locations searched when no config file is given.
func DefaultPaths() []string {
	base := filepath.Join(getConfigDir(), "gitdojo")
	return []string{
		filepath.Join(base, "config.yaml"),
		filepath.Join(base, "config.yml"),
	}
}

// LoadConfig reads the configuration from configPath, or from the default
// locations when it is empty, then applies the gd.key=value overrides.
func LoadConfig(configPath string, overrides []string) (*AppConfig, error) {
	paths := DefaultPaths()
	explicit := configPath != ""
	if explicit {
		expanded, err := ExpandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		paths = []string{expanded}
	}

	data := map[string]any{}
	source := ""
	for _, path := range paths {
		// #nosec G304 -- user supplied config path
		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) && !explicit {
				continue
			}
			return DefaultConfig(), fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if data == nil {
			data = map[string]any{}
		}
		source = path
		break
	}

	cli, err := parseCLIConfigOverrides(overrides)
	if err != nil {
		return DefaultConfig(), err
	}
	for key, value := range cli {
		data[key] = value
	}

	cfg := parseConfig(data)
	cfg.Path = source
	if cfg.Theme == "" {
		cfg.Theme = theme.Default()
	}
	if cfg.ScenarioDir != "" {
		dir, err := ExpandPath(cfg.ScenarioDir)
		if err != nil {
			return cfg, err
		}
		cfg.ScenarioDir = dir
	}
	return cfg, nil
}

// ExpandPath expands a leading ~ and environment variables.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}
