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

import "context"

// ConvertRequest describes a single converter invocation.
type ConvertRequest struct {
	// From is the source format identifier. Empty lets the converter guess.
	From string
	// To is the output format identifier.
	To string
	// Args are passed verbatim after the format flags.
	Args []string
	// Filters are passed as --filter arguments, in order.
	Filters []string
}

// Document is the result of reading one source file.
type Document struct {
	Path     string         `json:"path"`
	Format   string         `json:"format"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

// Converter is the interface to the external document conversion engine.
type Converter interface {
	// ConvertText converts in-memory text and returns the converter output.
	ConvertText(ctx context.Context, text string, req ConvertRequest) (string, error)

	// ConvertFile converts the file at path and returns the converter output.
	ConvertFile(ctx context.Context, path string, req ConvertRequest) (string, error)
}

// DocumentReader is what a host installs in its extension dispatch table.
type DocumentReader interface {
	Read(ctx context.Context, path string) (*Document, error)
}

// converterAvailable reports whether conv can be invoked. Converters that do
// not expose an Available method are assumed usable.
func converterAvailable(conv Converter) bool {
	if conv == nil {
		return false
	}
	if c, ok := conv.(interface{ Available() bool }); ok {
		return c.Available()
	}
	return true
}
