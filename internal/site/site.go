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

// Package site is a minimal in-process site generator host: a settings
// mapping, an extension dispatch table and a finalization signal.
package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	pandocreader "github.com/nicholasgasior/pandocreader-go"
	"github.com/nicholasgasior/pandocreader-go/internal/logfields"
)

// Site implements pandocreader.Host.
type Site struct {
	mu        sync.Mutex
	settings  map[string]any
	readers   map[string]pandocreader.DocumentReader
	hooks     []func() error
	finalized bool
	logger    *slog.Logger
}

// New creates a Site with the given settings mapping.
func New(settings map[string]any, logger *slog.Logger) *Site {
	if settings == nil {
		settings = map[string]any{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Site{
		settings: settings,
		readers:  make(map[string]pandocreader.DocumentReader),
		logger:   logger,
	}
}

func (s *Site) Settings() map[string]any {
	return s.settings
}

func (s *Site) SetReader(ext string, r pandocreader.DocumentReader) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readers[strings.ToLower(strings.TrimPrefix(ext, "."))] = r
}

func (s *Site) OnFinalized(hook func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// Reader returns the reader installed for ext.
func (s *Site) Reader(ext string) (pandocreader.DocumentReader, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.readers[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return r, ok
}

// Extensions returns the extensions with an installed reader, sorted.
func (s *Site) Extensions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	exts := make([]string, 0, len(s.readers))
	for ext := range s.readers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ReadFile dispatches path to the reader registered for its extension.
func (s *Site) ReadFile(ctx context.Context, path string) (*pandocreader.Document, error) {
	r, ok := s.Reader(filepath.Ext(path))
	if !ok {
		return nil, &pandocreader.UnsupportedFormatError{Extension: filepath.Ext(path), Path: path}
	}
	return r.Read(ctx, path)
}

// ReadDir reads every file under root that has a registered reader, in
// lexical order. Other files are skipped.
func (s *Site) ReadDir(ctx context.Context, root string) ([]*pandocreader.Document, error) {
	var docs []*pandocreader.Document
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := s.Reader(filepath.Ext(path)); !ok {
			s.logger.Debug("Skipping file without reader", logfields.Path(path))
			return nil
		}
		doc, err := s.ReadFile(ctx, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Finalize runs the finalization hooks once, most recently registered first.
// Later calls are no-ops.
func (s *Site) Finalize() error {
	s.mu.Lock()
	if s.finalized {
		s.mu.Unlock()
		return nil
	}
	s.finalized = true
	hooks := s.hooks
	s.hooks = nil
	s.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](); err != nil {
			s.logger.Error("Finalization hook failed", logfields.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
