package logfields

import "log/slog"

// Canonical log field names shared across packages.
const (
	KeyPath       = "path"
	KeyFormat     = "format"
	KeyExtension  = "extension"
	KeyTemplate   = "template"
	KeyBinary     = "binary"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Extension(e string) slog.Attr    { return slog.String(KeyExtension, e) }
func Template(p string) slog.Attr     { return slog.String(KeyTemplate, p) }
func Binary(b string) slog.Attr       { return slog.String(KeyBinary, b) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
