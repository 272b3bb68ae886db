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
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// DefaultFormats returns the built-in extension to pandoc format mapping.
func DefaultFormats() map[string]string {
	return map[string]string{
		"md":  "markdown_mmd", // MultiMarkdown
		"pdc": "markdown",     // Pandoc Markdown
	}
}

// FormatMap maps file extensions (without the leading dot) to pandoc input
// format identifiers. Identifiers are not validated; a bad one surfaces as a
// conversion error.
type FormatMap struct {
	mu         sync.RWMutex
	formats    map[string]string
	extensions []string
}

// NewFormatMap creates a FormatMap holding DefaultFormats.
func NewFormatMap() *FormatMap {
	m := &FormatMap{}
	m.Reset()
	return m
}

// Set applies overrides. A nil value removes the extension, any other value
// inserts or replaces it. Keys are applied in sorted order, so when two keys
// differ only in case the one sorting last wins.
func (m *FormatMap) Set(overrides map[string]*string) {
	keys := make([]string, 0, len(overrides))
	for ext := range overrides {
		keys = append(keys, ext)
	}
	sort.Strings(keys)

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		ext, format := normalizeExtension(key), overrides[key]
		if format == nil {
			delete(m.formats, ext)
			continue
		}
		m.formats[ext] = *format
	}
	m.refresh()
}

// Add maps ext to format.
func (m *FormatMap) Add(ext, format string) {
	m.Set(map[string]*string{ext: &format})
}

// Remove stops handling ext.
func (m *FormatMap) Remove(ext string) {
	m.Set(map[string]*string{ext: nil})
}

// Reset restores DefaultFormats, discarding every earlier change.
func (m *FormatMap) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.formats = DefaultFormats()
	m.refresh()
}

// Lookup returns the format for ext. The extension may carry a leading dot.
func (m *FormatMap) Lookup(ext string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	format, ok := m.formats[normalizeExtension(ext)]
	return format, ok
}

// FormatFor resolves the format of a file from its extension.
func (m *FormatMap) FormatFor(path string) (string, bool) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", false
	}
	return m.Lookup(ext)
}

// Extensions returns the supported extensions in sorted order.
func (m *FormatMap) Extensions() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.extensions))
	copy(out, m.extensions)
	return out
}

// Formats returns a copy of the current mapping.
func (m *FormatMap) Formats() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.formats))
	for k, v := range m.formats {
		out[k] = v
	}
	return out
}

// refresh recomputes the derived extension list. Callers hold mu.
func (m *FormatMap) refresh() {
	exts := make([]string, 0, len(m.formats))
	for ext := range m.formats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	m.extensions = exts
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
