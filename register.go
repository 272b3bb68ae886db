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
	"fmt"
	"log/slog"

	"github.com/nicholasgasior/pandocreader-go/internal/logfields"
)

// Host is the site generator side of the registration contract.
type Host interface {
	Lifecycle

	// Settings returns the host settings mapping; see SettingArgs,
	// SettingFilters and SettingFormatMap.
	Settings() map[string]any

	// SetReader installs r as the handler for files with extension ext.
	SetReader(ext string, r DocumentReader)
}

// Register applies the host settings to the reader's Config, creates the
// metadata template (torn down when the host finalizes) and installs the
// reader for every supported extension.
//
// A disabled reader is not registered and Register returns false without
// error.
func Register(host Host, r *Reader) (bool, error) {
	if !r.Enabled() {
		r.logger.Warn("Converter not available, pandoc reader disabled")
		return false, nil
	}

	if v, ok := r.converter.(interface {
		Version(context.Context) (string, error)
	}); ok {
		if version, err := v.Version(context.Background()); err != nil {
			r.logger.Warn("Could not determine converter version", logfields.Error(err))
		} else {
			r.logger.Debug("Converter available", slog.String("version", version))
		}
	}

	r.logger.Debug("Reading host settings")
	settings, err := SettingsFromMap(host.Settings())
	if err != nil {
		return false, fmt.Errorf("pandoc reader settings: %w", err)
	}
	r.config.Apply(settings)

	r.logger.Debug("Creating metadata template")
	if _, err := r.config.Template.Ensure(host); err != nil {
		return false, err
	}

	for _, ext := range r.config.Formats.Extensions() {
		format, _ := r.config.Formats.Lookup(ext)
		r.logger.Debug("Registering pandoc reader", logfields.Extension(ext), logfields.Format(format))
		host.SetReader(ext, r)
	}
	return true, nil
}
