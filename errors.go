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
	"strings"
)

var (
	// ErrConverterUnavailable is returned when the pandoc executable cannot be found.
	ErrConverterUnavailable = errors.New("converter unavailable")

	// ErrBinaryInput is returned when a source file does not contain text.
	ErrBinaryInput = errors.New("source is not a text document")
)

// UnsupportedFormatError is returned when a file extension has no format mapping.
type UnsupportedFormatError struct {
	Extension string
	Path      string
}

func (e *UnsupportedFormatError) Error() string {
	parts := []string{"unsupported format"}
	if e.Extension != "" {
		parts = append(parts, fmt.Sprintf("extension=%q", e.Extension))
	}
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%q", e.Path))
	}
	return strings.Join(parts, " ")
}

// ConversionError is returned when the converter ran but failed.
type ConversionError struct {
	Format string
	Path   string
	Stderr string
	Err    error
}

func (e *ConversionError) Error() string {
	var b strings.Builder
	b.WriteString("conversion failed")
	if e.Format != "" {
		fmt.Fprintf(&b, " format=%q", e.Format)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " path=%q", e.Path)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if e.Stderr != "" {
		fmt.Fprintf(&b, "\n  %s", strings.ReplaceAll(e.Stderr, "\n", "\n  "))
	}
	return b.String()
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// MetadataError is returned when the converter output is not a JSON object.
type MetadataError struct {
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid metadata: %v", e.Err)
	}
	return fmt.Sprintf("invalid metadata in %q: %v", e.Path, e.Err)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

// IsUnsupportedFormat reports whether the error is an UnsupportedFormatError.
func IsUnsupportedFormat(err error) bool {
	var target *UnsupportedFormatError
	return errors.As(err, &target)
}

// IsConverterUnavailable reports whether err stems from a missing converter.
func IsConverterUnavailable(err error) bool {
	return errors.Is(err, ErrConverterUnavailable)
}
