package pandocreader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type convertCall struct {
	input string
	req   ConvertRequest
}

// fakeConverter records invocations and returns canned output.
type fakeConverter struct {
	unavailable bool

	content  string
	metadata string
	err      error

	version    string
	versionErr error

	textCalls    []convertCall
	fileCalls    []convertCall
	versionCalls int
}

func (f *fakeConverter) Version(context.Context) (string, error) {
	f.versionCalls++
	return f.version, f.versionErr
}

func (f *fakeConverter) Available() bool {
	return !f.unavailable
}

func (f *fakeConverter) ConvertText(_ context.Context, text string, req ConvertRequest) (string, error) {
	f.textCalls = append(f.textCalls, convertCall{input: text, req: req})
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

func (f *fakeConverter) ConvertFile(_ context.Context, path string, req ConvertRequest) (string, error) {
	f.fileCalls = append(f.fileCalls, convertCall{input: path, req: req})
	if f.err != nil {
		return "", f.err
	}
	return f.metadata, nil
}

// fakeLifecycle collects finalization hooks.
type fakeLifecycle struct {
	hooks []func() error
}

func (l *fakeLifecycle) OnFinalized(hook func() error) {
	l.hooks = append(l.hooks, hook)
}

func (l *fakeLifecycle) finalize(t *testing.T) {
	t.Helper()
	for _, h := range l.hooks {
		require.NoError(t, h())
	}
}

// newTestConfig returns a Config whose template lives in a per-test dir.
func newTestConfig(t *testing.T) *Config {
	t.Helper()
	cfg := NewConfig(WithTemplateDir(t.TempDir()))
	t.Cleanup(func() { cfg.Close() })
	return cfg
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
