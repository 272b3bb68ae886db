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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/nicholasgasior/pandocreader-go/internal/logfields"
)

// Reader converts source documents into HTML content and a metadata mapping
// by delegating to a Converter.
type Reader struct {
	config    *Config
	converter Converter
	enabled   bool

	logger           *slog.Logger
	keyRules         []KeyRule
	processors       []ContentProcessor
	titleFromContent bool
}

// New creates a Reader. Converter availability is checked once here; see
// Enabled.
func New(cfg *Config, conv Converter, opts ...Option) *Reader {
	if cfg == nil {
		cfg = NewConfig()
	}
	r := &Reader{
		config:    cfg,
		converter: conv,
		logger:    slog.Default(),
		keyRules:  DefaultKeyRules(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.enabled = converterAvailable(conv)
	return r
}

// Enabled reports whether the converter was available when the Reader was
// created. Hosts skip registering disabled readers.
func (r *Reader) Enabled() bool {
	return r.enabled
}

// Config returns the configuration shared by this Reader.
func (r *Reader) Config() *Config {
	return r.config
}

// Read resolves the format of path from its extension and returns its
// metadata and content.
func (r *Reader) Read(ctx context.Context, path string) (*Document, error) {
	format, ok := r.config.Formats.FormatFor(path)
	if !ok {
		return nil, &UnsupportedFormatError{Extension: filepath.Ext(path), Path: path}
	}

	metadata, err := r.ReadMetadata(ctx, path, format)
	if err != nil {
		return nil, err
	}

	content, err := r.ReadContent(ctx, path, format)
	if err != nil {
		return nil, err
	}

	if r.titleFromContent {
		if _, ok := metadata["title"]; !ok {
			if title := firstHeading(content); title != "" {
				metadata["title"] = title
			}
		}
	}

	return &Document{
		Path:     path,
		Format:   format,
		Content:  content,
		Metadata: metadata,
	}, nil
}

// ReadContent converts the document at path from format to the configured
// output format, restores link directives and runs the content processors.
func (r *Reader) ReadContent(ctx context.Context, path, format string) (string, error) {
	text, err := OpenText(path)
	if err != nil {
		return "", err
	}

	r.logger.Debug("Converting content", logfields.Path(path), logfields.Format(format))
	out, err := r.converter.ConvertText(ctx, text, ConvertRequest{
		From:    format,
		To:      r.config.OutputFormat(),
		Args:    r.config.Args(),
		Filters: r.config.Filters(),
	})
	if err != nil {
		var ce *ConversionError
		if errors.As(err, &ce) && ce.Path == "" {
			ce.Path = path
		}
		return "", err
	}

	return r.processContent(RestoreLinkDirectives(out))
}

func (r *Reader) processContent(content string) (string, error) {
	for i, p := range r.processors {
		var err error
		if content, err = p(content); err != nil {
			return "", fmt.Errorf("content processor %d: %w", i, err)
		}
	}
	return content, nil
}

// ReadMetadata extracts the document metadata through the metadata template.
// Keys are lower-cased and the key rules applied; values keep their JSON types.
func (r *Reader) ReadMetadata(ctx context.Context, path, format string) (map[string]any, error) {
	tmpl, err := r.config.Template.Ensure(nil)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Extracting metadata", logfields.Path(path), logfields.Format(format))
	out, err := r.converter.ConvertFile(ctx, path, ConvertRequest{
		From: format,
		To:   r.config.OutputFormat(),
		Args: []string{"--template", tmpl},
	})
	if err != nil {
		return nil, err
	}

	raw, err := parseMetadata(path, out)
	if err != nil {
		return nil, err
	}
	return normalizeMetadata(raw, r.keyRules), nil
}
