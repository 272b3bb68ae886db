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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/nicholasgasior/pandocreader-go/internal/logfields"
)

// DefaultPandocBinary is the executable looked up on PATH when no explicit
// binary is configured.
const DefaultPandocBinary = "pandoc"

// PandocConverter runs the pandoc executable as a subprocess.
type PandocConverter struct {
	binary string
	logger *slog.Logger
}

// NewPandocConverter creates a converter for the given binary. An empty
// binary selects DefaultPandocBinary.
func NewPandocConverter(binary string, logger *slog.Logger) *PandocConverter {
	if binary == "" {
		binary = DefaultPandocBinary
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PandocConverter{binary: binary, logger: logger}
}

// Binary returns the configured executable name or path.
func (p *PandocConverter) Binary() string {
	return p.binary
}

// Available reports whether the pandoc executable can be found.
func (p *PandocConverter) Available() bool {
	_, err := exec.LookPath(p.binary)
	return err == nil
}

// Version returns the first line of `pandoc --version`, e.g. "pandoc 3.1.11".
func (p *PandocConverter) Version(ctx context.Context) (string, error) {
	out, err := p.run(ctx, nil, []string{"--version"}, ConvertRequest{}, "")
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(out, "\n")
	return strings.TrimSpace(line), nil
}

func (p *PandocConverter) ConvertText(ctx context.Context, text string, req ConvertRequest) (string, error) {
	return p.run(ctx, strings.NewReader(text), req.commandArgs(), req, "")
}

func (p *PandocConverter) ConvertFile(ctx context.Context, path string, req ConvertRequest) (string, error) {
	args := append(req.commandArgs(), path)
	return p.run(ctx, nil, args, req, path)
}

func (p *PandocConverter) run(ctx context.Context, stdin io.Reader, args []string, req ConvertRequest, path string) (string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, p.binary, args...)
	cmd.Stdin = stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	p.logger.Debug("pandoc invocation finished",
		logfields.Binary(p.binary),
		slog.Any("args", args),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000),
	)

	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrConverterUnavailable, p.binary)
		}
		return "", &ConversionError{
			Format: req.From,
			Path:   path,
			Stderr: cleanDiagnostics(stderr.String()),
			Err:    err,
		}
	}

	return stdout.String(), nil
}

// commandArgs builds the pandoc argument list: format flags first, then the
// extra arguments, then one --filter per filter.
func (r ConvertRequest) commandArgs() []string {
	args := make([]string, 0, 2+len(r.Args)+len(r.Filters))
	if r.From != "" {
		args = append(args, "--from="+r.From)
	}
	if r.To != "" {
		args = append(args, "--to="+r.To)
	}
	args = append(args, r.Args...)
	for _, f := range r.Filters {
		args = append(args, "--filter="+f)
	}
	return args
}
