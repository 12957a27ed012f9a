package netcopy

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SettingsFileName is the settings file looked up in the install directory.
const SettingsFileName = "config.yaml"

// Settings reads single keys from the static settings file. Every Lookup
// re-reads the file, so edits are picked up without a restart.
type Settings struct {
	path string
}

// NewSettings returns an accessor for the YAML file at path.
func NewSettings(path string) *Settings {
	return &Settings{path: path}
}

// DefaultSettingsPath returns config.yaml next to the running executable.
// Falls back to the working directory when the executable can't be located.
func DefaultSettingsPath() string {
	exe, err := os.Executable()
	if err != nil {
		return SettingsFileName
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), SettingsFileName)
}

// Lookup returns the scalar value stored under key. The second result is
// false when the file is missing, unreadable or malformed, when the key is
// absent, or when its value is null or not a scalar.
func (s *Settings) Lookup(key string) (string, bool) {
	l := sub("settings")

	data, err := os.ReadFile(s.path)
	if err != nil {
		l.Warn("settings read failed", "path", s.path, "err", err)
		return "", false
	}

	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		l.Warn("settings parse failed", "path", s.path, "err", err)
		return "", false
	}

	node, ok := doc[key]
	if !ok {
		l.Debug("settings key absent", "path", s.path, "key", key)
		return "", false
	}
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = *node.Alias
	}
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		l.Warn("settings value not a scalar", "path", s.path, "key", key)
		return "", false
	}
	return node.Value, true
}

// Require is Lookup for callers that treat absence as an error.
func (s *Settings) Require(key string) (string, error) {
	v, ok := s.Lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %q in %s", ErrConfigMissing, key, s.path)
	}
	return v, nil
}
