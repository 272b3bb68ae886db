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
	"log/slog"
	"sync"
)

// DefaultOutputFormat is the pandoc output format for document content.
const DefaultOutputFormat = "html5"

// Config is the conversion state shared by every Reader built from it: the
// format map, converter arguments and filters, and the metadata template.
type Config struct {
	Formats  *FormatMap
	Template *MetadataTemplate

	mu           sync.RWMutex
	args         []string
	filters      []string
	outputFormat string
}

// ConfigOption configures a Config.
type ConfigOption func(*Config)

// WithTemplateDir sets the directory the metadata template is created in.
func WithTemplateDir(dir string) ConfigOption {
	return func(c *Config) {
		c.Template.dir = dir
	}
}

// WithOutputFormat overrides DefaultOutputFormat.
func WithOutputFormat(format string) ConfigOption {
	return func(c *Config) {
		c.outputFormat = format
	}
}

// WithTemplateLogger sets the logger used by the metadata template manager.
func WithTemplateLogger(logger *slog.Logger) ConfigOption {
	return func(c *Config) {
		if logger != nil {
			c.Template.logger = logger
		}
	}
}

// NewConfig creates a Config with the default format map and no extra
// arguments or filters.
func NewConfig(opts ...ConfigOption) *Config {
	c := &Config{
		Formats:      NewFormatMap(),
		Template:     NewMetadataTemplate("", nil),
		outputFormat: DefaultOutputFormat,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Apply replaces the converter arguments and filters with those in s and
// applies its format overrides on top of the current format map.
func (c *Config) Apply(s Settings) {
	c.mu.Lock()
	c.args = append([]string(nil), s.Args...)
	c.filters = append([]string(nil), s.Filters...)
	c.mu.Unlock()

	c.Formats.Set(s.FormatMap)
}

// Args returns a copy of the extra converter arguments.
func (c *Config) Args() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.args...)
}

// Filters returns a copy of the converter filters.
func (c *Config) Filters() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.filters...)
}

// OutputFormat returns the pandoc output format for content.
func (c *Config) OutputFormat() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.outputFormat
}

// Close removes the metadata template if one was created.
func (c *Config) Close() error {
	return c.Template.Teardown()
}
