package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Dir is ~/.config/dotfield.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "dotfield"), nil
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultThemePath holds the shared theme flag.
func DefaultThemePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme"), nil
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Load reads settings from path, or from DefaultPath when path is empty. A
// missing default file is created with defaults; a missing explicit file is an
// error. Unknown keys are logged and ignored, invalid values are returned as
// errors wrapping ErrInvalid.
func Load(path string, log *zap.Logger) (Settings, error) {
	if log == nil {
		log = zap.NewNop()
	}
	explicit := path != ""
	if explicit {
		path = ExpandPath(path)
	} else {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			log.Info("creating default config file", zap.String("path", path))
			if err := writeDefault(path); err != nil {
				log.Warn("failed to create default config file", zap.Error(err))
			}
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, log)
}

// Parse decodes YAML over the defaults.
func Parse(data []byte, log *zap.Logger) (Settings, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for _, key := range unknownKeys(raw) {
		log.Warn("unrecognised config key", zap.String("key", key))
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

var knownKeys = map[string]map[string]bool{
	"render": {
		"spacing": true, "dot_radius": true, "dot_color": true, "opacity": true,
		"base_darkness": true, "spotlight_radius": true, "spotlight_strength": true,
		"spotlight_color": true,
	},
	"window": {"width": true, "height": true, "title": true, "passthrough": true},
	"theme":  {"file": true, "default": true, "poll_interval": true},
	"log":    {"level": true, "development": true, "file": true},
}

func unknownKeys(raw map[string]any) []string {
	var out []string
	for section, v := range raw {
		fields, ok := knownKeys[section]
		if !ok {
			out = append(out, section)
			continue
		}
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		for k := range m {
			if !fields[k] {
				out = append(out, section+"."+k)
			}
		}
	}
	sort.Strings(out)
	return out
}

func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
