package site

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pandocreader "github.com/nicholasgasior/pandocreader-go"
)

// stubConverter answers every call with fixed output.
type stubConverter struct {
	formats []string
}

func (c *stubConverter) ConvertText(_ context.Context, _ string, req pandocreader.ConvertRequest) (string, error) {
	c.formats = append(c.formats, req.From)
	return `<p><a href="%7Bstatic%7D/img.png">img</a></p>`, nil
}

func (c *stubConverter) ConvertFile(_ context.Context, path string, _ pandocreader.ConvertRequest) (string, error) {
	return `{"Title": "` + filepath.Base(path) + `"}`, nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newRegisteredSite(t *testing.T, settings map[string]any) (*Site, *pandocreader.Config, *stubConverter) {
	t.Helper()
	s := New(settings, nil)
	cfg := pandocreader.NewConfig(pandocreader.WithTemplateDir(t.TempDir()))
	conv := &stubConverter{}

	ok, err := pandocreader.Register(s, pandocreader.New(cfg, conv))
	require.NoError(t, err)
	require.True(t, ok)
	t.Cleanup(func() { s.Finalize() })
	return s, cfg, conv
}

func TestSiteReadFile(t *testing.T) {
	s, _, conv := newRegisteredSite(t, map[string]any{
		pandocreader.SettingFormatMap: map[string]any{"fake": "markdown+footnotes"},
	})
	dir := t.TempDir()

	for _, name := range []string{"doc.pdc", "doc.md", "doc.fake"} {
		writeFile(t, filepath.Join(dir, name), "text\n")
	}

	for _, tt := range []struct{ name, format string }{
		{"doc.pdc", "markdown"},
		{"doc.md", "markdown_mmd"},
		{"doc.fake", "markdown+footnotes"},
	} {
		doc, err := s.ReadFile(context.Background(), filepath.Join(dir, tt.name))
		require.NoError(t, err)
		assert.Equal(t, tt.format, doc.Format)
		assert.Equal(t, map[string]any{"title": tt.name}, doc.Metadata)
		assert.Equal(t, `<p><a href="{static}/img.png">img</a></p>`, doc.Content)
	}
	assert.Equal(t, []string{"markdown", "markdown_mmd", "markdown+footnotes"}, conv.formats)

	_, err := s.ReadFile(context.Background(), filepath.Join(dir, "doc.txt"))
	assert.True(t, pandocreader.IsUnsupportedFormat(err))
}

func TestSiteReadDir(t *testing.T) {
	s, _, _ := newRegisteredSite(t, nil)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.md"), "a\n")
	writeFile(t, filepath.Join(root, "posts", "b.pdc"), "b\n")
	writeFile(t, filepath.Join(root, "posts", "notes.txt"), "skip\n")
	writeFile(t, filepath.Join(root, "static", "logo.svg"), "<svg/>")

	docs, err := s.ReadDir(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, filepath.Join(root, "a.md"), docs[0].Path)
	assert.Equal(t, filepath.Join(root, "posts", "b.pdc"), docs[1].Path)
}

func TestSiteExtensions(t *testing.T) {
	s, _, _ := newRegisteredSite(t, map[string]any{
		pandocreader.SettingFormatMap: map[string]any{"md": nil, "rst": "rst"},
	})
	assert.Equal(t, []string{"pdc", "rst"}, s.Extensions())

	_, ok := s.Reader(".RST")
	assert.True(t, ok)
	_, ok = s.Reader("md")
	assert.False(t, ok)
}

func TestSiteFinalizeRemovesTemplate(t *testing.T) {
	s, cfg, _ := newRegisteredSite(t, nil)
	path := cfg.Template.Path()
	require.FileExists(t, path)

	require.NoError(t, s.Finalize())
	assert.NoFileExists(t, path)
	assert.False(t, cfg.Template.Created())

	require.NoError(t, s.Finalize())
}

func TestSiteFinalizeOrderAndErrors(t *testing.T) {
	s := New(nil, nil)
	var order []int
	boom := errors.New("boom")

	s.OnFinalized(func() error { order = append(order, 1); return nil })
	s.OnFinalized(func() error { order = append(order, 2); return boom })
	s.OnFinalized(func() error { order = append(order, 3); return nil })

	err := s.Finalize()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{3, 2, 1}, order)

	require.NoError(t, s.Finalize())
	assert.Equal(t, []int{3, 2, 1}, order)
}

func TestSiteDisabledReader(t *testing.T) {
	s := New(nil, nil)
	conv := pandocreader.NewPandocConverter("pandoc-does-not-exist-7f3a", nil)

	ok, err := pandocreader.Register(s, pandocreader.New(pandocreader.NewConfig(), conv))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, s.Extensions())
}
