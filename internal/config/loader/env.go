package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration from environment variables. A variable
// PREFIX_SECTION_KEY sets key in section, so TESSERA_SNAP_SENSE_RANGE
// becomes snap.sense_range. Only the listed sections are read.
type EnvLoader struct {
	prefix   string            // e.g. "TESSERA_"
	sections map[string]bool   // lower-case section names
	mapping  map[string]string // Env var -> config path
	environ  func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix in the
// given sections. The prefix should include the trailing underscore.
func NewEnvLoader(prefix string, sections ...string) *EnvLoader {
	l := &EnvLoader{
		prefix:   prefix,
		sections: make(map[string]bool, len(sections)),
		mapping:  make(map[string]string),
		environ:  os.Environ,
	}
	for _, s := range sections {
		l.sections[strings.ToLower(s)] = true
	}
	return l
}

// AddMapping maps a variable to a dotted config path, bypassing the
// section naming rule.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load reads the environment.
// Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		if path, ok := l.mapping[name]; ok {
			setByPath(config, path, parseValue(value))
			continue
		}
		if path, ok := l.envToPath(name); ok {
			setByPath(config, path, parseValue(value))
		}
	}
	return config, nil
}

// envToPath converts TESSERA_POINTER_HIT_TOLERANCE to
// pointer.hit_tolerance.
func (l *EnvLoader) envToPath(env string) (string, bool) {
	if !strings.HasPrefix(env, l.prefix) {
		return "", false
	}
	section, key, ok := strings.Cut(strings.TrimPrefix(env, l.prefix), "_")
	if !ok || key == "" {
		return "", false
	}
	section = strings.ToLower(section)
	if !l.sections[section] {
		return "", false
	}
	return section + "." + strings.ToLower(key), true
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
