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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/alecthomas/kong"

	pandocreader "github.com/nicholasgasior/pandocreader-go"
	"github.com/nicholasgasior/pandocreader-go/internal/site"
)

var version = "dev"

var CLI struct {
	Config  string `short:"c" help:"Settings file (YAML or TOML) with PANDOC_ARGS, PANDOC_EXTENSIONS and PANDOC_FORMAT_MAP" type:"path"`
	Pandoc  string `help:"Path to the pandoc executable" default:"pandoc"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Read struct {
		Files            []string `arg:"" help:"Source files or directories to read" type:"path"`
		Output           string   `short:"o" help:"Output file (default: stdout)" type:"path"`
		TitleFromContent bool     `help:"Use the first heading as title when the document has none"`
	} `cmd:"" help:"Convert documents and print their content and metadata as JSON"`

	Formats struct{} `cmd:"" help:"Print the effective extension to format mapping"`

	Check struct{} `cmd:"" help:"Report whether pandoc is available"`

	Version kong.VersionFlag `help:"Show version"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("pandocreader"),
		kong.Description("Read documents in any pandoc-supported markup as HTML content plus metadata."),
		kong.Vars{"version": version},
	)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch kctx.Command() {
	case "read <files>":
		err = runRead(ctx, logger)
	case "formats":
		err = runFormats(logger)
	case "check":
		err = runCheck(ctx, logger)
	default:
		err = fmt.Errorf("unknown command %q", kctx.Command())
	}
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func loadSettings() (pandocreader.Settings, error) {
	if CLI.Config == "" {
		return pandocreader.Settings{}, nil
	}
	return pandocreader.LoadSettingsFile(CLI.Config)
}

// setup builds a site host with the pandoc reader registered on it.
func setup(logger *slog.Logger, opts ...pandocreader.Option) (*site.Site, *pandocreader.Reader, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, nil, err
	}

	host := site.New(settings.Map(), logger)
	cfg := pandocreader.NewConfig(pandocreader.WithTemplateLogger(logger))
	conv := pandocreader.NewPandocConverter(CLI.Pandoc, logger)
	r := pandocreader.New(cfg, conv, append([]pandocreader.Option{pandocreader.WithLogger(logger)}, opts...)...)

	if _, err := pandocreader.Register(host, r); err != nil {
		host.Finalize()
		return nil, nil, err
	}
	return host, r, nil
}

func runRead(ctx context.Context, logger *slog.Logger) (err error) {
	host, r, err := setup(logger, pandocreader.WithTitleFromContent(CLI.Read.TitleFromContent))
	if err != nil {
		return err
	}
	defer func() {
		if ferr := host.Finalize(); ferr != nil && err == nil {
			err = ferr
		}
	}()

	if !r.Enabled() {
		return fmt.Errorf("%w: %s", pandocreader.ErrConverterUnavailable, CLI.Pandoc)
	}

	var docs []*pandocreader.Document
	for _, path := range CLI.Read.Files {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			found, err := host.ReadDir(ctx, path)
			if err != nil {
				return err
			}
			docs = append(docs, found...)
			continue
		}
		doc, err := host.ReadFile(ctx, path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	return writeDocuments(CLI.Read.Output, docs)
}

// writeDocuments encodes docs as indented JSON to path, or to stdout when
// path is empty. A failed close of the output file is reported.
func writeDocuments(path string, docs []*pandocreader.Document) (err error) {
	var out io.Writer = os.Stdout
	if path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close output: %w", cerr)
			}
		}()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(docs)
}

func runFormats(logger *slog.Logger) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	cfg := pandocreader.NewConfig(pandocreader.WithTemplateLogger(logger))
	cfg.Apply(settings)

	formats := cfg.Formats.Formats()
	exts := make([]string, 0, len(formats))
	for ext := range formats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		fmt.Printf("%-8s %s\n", ext, formats[ext])
	}
	return nil
}

func runCheck(ctx context.Context, logger *slog.Logger) error {
	conv := pandocreader.NewPandocConverter(CLI.Pandoc, logger)
	if !conv.Available() {
		return fmt.Errorf("%w: %s not found in PATH", pandocreader.ErrConverterUnavailable, conv.Binary())
	}
	v, err := conv.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Println(v)
	return nil
}
