// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package pandocreader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Host setting keys.
const (
	SettingArgs      = "PANDOC_ARGS"
	SettingFilters   = "PANDOC_EXTENSIONS"
	SettingFormatMap = "PANDOC_FORMAT_MAP"
)

// Settings holds the host-provided converter configuration. Every field is
// optional.
type Settings struct {
	// Args are extra pandoc command-line arguments.
	Args []string `yaml:"PANDOC_ARGS" toml:"PANDOC_ARGS"`
	// Filters are pandoc filter identifiers.
	Filters []string `yaml:"PANDOC_EXTENSIONS" toml:"PANDOC_EXTENSIONS"`
	// FormatMap overrides the extension to format mapping. A null value
	// removes the extension; in TOML files, which have no null, so does "".
	FormatMap map[string]*string `yaml:"PANDOC_FORMAT_MAP" toml:"PANDOC_FORMAT_MAP"`
}

// Map returns s as a host settings mapping understood by SettingsFromMap.
func (s Settings) Map() map[string]any {
	m := make(map[string]any, 3)
	if s.Args != nil {
		m[SettingArgs] = append([]string(nil), s.Args...)
	}
	if s.Filters != nil {
		m[SettingFilters] = append([]string(nil), s.Filters...)
	}
	if s.FormatMap != nil {
		fm := make(map[string]*string, len(s.FormatMap))
		for k, v := range s.FormatMap {
			fm[k] = v
		}
		m[SettingFormatMap] = fm
	}
	return m
}

// SettingsFromMap extracts Settings from a host settings mapping. Unknown
// keys are ignored.
func SettingsFromMap(m map[string]any) (Settings, error) {
	var s Settings
	var err error

	if s.Args, err = stringList(SettingArgs, m[SettingArgs]); err != nil {
		return Settings{}, err
	}
	if s.Filters, err = stringList(SettingFilters, m[SettingFilters]); err != nil {
		return Settings{}, err
	}
	if s.FormatMap, err = formatOverrides(m[SettingFormatMap]); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadSettingsFile decodes a YAML (.yaml, .yml) or TOML (.toml) settings file.
func LoadSettingsFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var s Settings
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
		}
	case ".toml":
		d := toml.NewDecoder(bytes.NewReader(data))
		d.DisallowUnknownFields()
		if err := d.Decode(&s); err != nil {
			return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
		}
		for ext, format := range s.FormatMap {
			if format != nil && *format == "" {
				s.FormatMap[ext] = nil
			}
		}
	default:
		return Settings{}, fmt.Errorf("unsupported settings file extension %q", ext)
	}
	return s, nil
}

func stringList(key string, v any) ([]string, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("setting %s[%d]: expected string, got %T", key, i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("setting %s: expected list of strings, got %T", key, v)
	}
}

func formatOverrides(v any) (map[string]*string, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case map[string]*string:
		out := make(map[string]*string, len(v))
		for k, f := range v {
			out[k] = f
		}
		return out, nil
	case map[string]string:
		out := make(map[string]*string, len(v))
		for k, f := range v {
			out[k] = &f
		}
		return out, nil
	case map[string]any:
		out := make(map[string]*string, len(v))
		for k, item := range v {
			switch f := item.(type) {
			case nil:
				out[k] = nil
			case string:
				out[k] = &f
			default:
				return nil, fmt.Errorf("setting %s[%q]: expected string or null, got %T", SettingFormatMap, k, item)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("setting %s: expected mapping, got %T", SettingFormatMap, v)
	}
}
