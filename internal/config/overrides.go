package config

import (
	"fmt"
	"slices"
	"strings"
)

// OverridePrefix namespaces command line config overrides.
const OverridePrefix = "gd."

// parseCLIConfigOverrides parses --config gd.key=value entries into a map
// suitable for parseConfig. A key given twice keeps the last value.
func parseCLIConfigOverrides(overrides []string) (map[string]any, error) {
	result := make(map[string]any, len(overrides))

	for _, override := range overrides {
		fullKey, value, ok := strings.Cut(override, "=")
		if !ok {
			return nil, fmt.Errorf("invalid config override: %q, expected format: gd.key=value (note: use = not space)", override)
		}

		fullKey = strings.TrimSpace(fullKey)
		if !strings.HasPrefix(fullKey, OverridePrefix) {
			return nil, fmt.Errorf("config override key must start with %q: %q", OverridePrefix, fullKey)
		}

		key := strings.TrimPrefix(fullKey, OverridePrefix)
		if key == "" {
			return nil, fmt.Errorf("empty config key in override: %q", override)
		}
		if !slices.Contains(Keys, key) {
			return nil, fmt.Errorf("unknown config key %q", key)
		}

		// values stay strings, coerceBool/coerceInt handle conversion
		result[key] = value
	}

	return result, nil
}

// Keys lists the configuration keys understood by parseConfig.
var Keys = []string{
	"scenario_dir",
	"default_scenario",
	"theme",
	"debug_log",
	"log_level",
	"show_graph",
	"show_icons",
	"prompt",
	"history_limit",
	"watch_scenarios",
	"hash_length",
}

