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
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/nicholasgasior/pandocreader-go/internal/logfields"
)

// metadataTemplateBody makes pandoc print the document metadata as JSON
// instead of the rendered document.
const metadataTemplateBody = "$meta-json$"

// Lifecycle is the host shutdown signal. Hooks run once before the host exits.
type Lifecycle interface {
	OnFinalized(hook func() error)
}

// MetadataTemplate owns the temporary template file passed to pandoc when
// extracting metadata. At most one file exists at a time.
type MetadataTemplate struct {
	mu     sync.Mutex
	dir    string
	path   string
	hooked map[Lifecycle]bool
	logger *slog.Logger
}

// NewMetadataTemplate creates an uninitialized template manager. Files are
// created in dir, or in os.TempDir when dir is empty.
func NewMetadataTemplate(dir string, logger *slog.Logger) *MetadataTemplate {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetadataTemplate{dir: dir, logger: logger}
}

// Ensure creates the template file if it does not exist yet and returns its
// path. Teardown is registered once with every distinct non-nil lc, whether
// or not this call created the file. lc must be comparable, which any
// pointer is.
func (t *MetadataTemplate) Ensure(lc Lifecycle) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.path == "" {
		path, err := t.create()
		if err != nil {
			return "", err
		}
		t.path = path
		t.logger.Debug("Metadata template created", logfields.Template(path))
	}

	if lc != nil && !t.hooked[lc] {
		if t.hooked == nil {
			t.hooked = make(map[Lifecycle]bool)
		}
		t.hooked[lc] = true
		lc.OnFinalized(t.Teardown)
	}
	return t.path, nil
}

func (t *MetadataTemplate) create() (string, error) {
	f, err := os.CreateTemp(t.dir, "pandocreader-*.template")
	if err != nil {
		return "", fmt.Errorf("create metadata template: %w", err)
	}
	if _, err := f.WriteString(metadataTemplateBody); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write metadata template: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close metadata template: %w", err)
	}
	return f.Name(), nil
}

// Path returns the current template path, or "" when none exists.
func (t *MetadataTemplate) Path() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.path
}

// Created reports whether a template file currently exists.
func (t *MetadataTemplate) Created() bool {
	return t.Path() != ""
}

// Teardown removes the template file. It is a no-op when no file exists, so
// it may be called any number of times.
func (t *MetadataTemplate) Teardown() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	// A later Ensure creates a new file that nobody has hooked yet.
	t.hooked = nil

	if t.path == "" {
		return nil
	}
	path := t.path
	t.path = ""

	t.logger.Debug("Deleting metadata template", logfields.Template(path))
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove metadata template: %w", err)
	}
	return nil
}

// Close implements io.Closer.
func (t *MetadataTemplate) Close() error {
	return t.Teardown()
}
