// Package targets loads the namespaces and flags the analytics view can
// navigate between.
package targets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmpty is returned for a targets file without any namespace.
var ErrEmpty = errors.New("targets file defines no namespaces")

// FlagConfig is a single flag entry
type FlagConfig struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name,omitempty"` // Display name (optional)
}

// NamespaceConfig is a namespace and the flags offered inside it
type NamespaceConfig struct {
	Key   string       `yaml:"key"`
	Name  string       `yaml:"name,omitempty"`
	Flags []FlagConfig `yaml:"flags"`
}

// Targets is the YAML document root
type Targets struct {
	Namespaces []NamespaceConfig `yaml:"namespaces"`
}

// expandHome resolves a leading "~/" against the user's home directory
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// Load reads and validates a targets file
func Load(path string) (*Targets, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates a targets document
func Parse(data []byte) (*Targets, error) {
	var t Targets
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse targets YAML: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks that keys are present and unique
func (t *Targets) Validate() error {
	if len(t.Namespaces) == 0 {
		return ErrEmpty
	}

	namespaces := make(map[string]bool)
	for i, ns := range t.Namespaces {
		if ns.Key == "" {
			return fmt.Errorf("namespace #%d: key is required", i+1)
		}
		if namespaces[ns.Key] {
			return fmt.Errorf("namespace %q: duplicate key", ns.Key)
		}
		namespaces[ns.Key] = true

		flags := make(map[string]bool)
		for j, f := range ns.Flags {
			if f.Key == "" {
				return fmt.Errorf("namespace %q flag #%d: key is required", ns.Key, j+1)
			}
			if flags[f.Key] {
				return fmt.Errorf("namespace %q flag %q: duplicate key", ns.Key, f.Key)
			}
			flags[f.Key] = true
		}
	}
	return nil
}

// Single builds targets for one namespace and flag, used when no file is given
func Single(namespace, flag string) *Targets {
	ns := NamespaceConfig{Key: namespace}
	if flag != "" {
		ns.Flags = []FlagConfig{{Key: flag}}
	}
	return &Targets{Namespaces: []NamespaceConfig{ns}}
}

// Namespace returns the namespace with the given key
func (t *Targets) Namespace(key string) (NamespaceConfig, bool) {
	for _, ns := range t.Namespaces {
		if ns.Key == key {
			return ns, true
		}
	}
	return NamespaceConfig{}, false
}

// Ensure adds namespace/flag when missing so command-line values are always
// reachable from the navigation lists
func (t *Targets) Ensure(namespace, flag string) {
	if namespace == "" {
		return
	}
	for i := range t.Namespaces {
		ns := &t.Namespaces[i]
		if ns.Key != namespace {
			continue
		}
		if flag == "" {
			return
		}
		for _, f := range ns.Flags {
			if f.Key == flag {
				return
			}
		}
		ns.Flags = append(ns.Flags, FlagConfig{Key: flag})
		return
	}

	added := Single(namespace, flag).Namespaces[0]
	t.Namespaces = append(t.Namespaces, added)
}
