package pandocreader

import "log/slog"

// Option configures a Reader.
type Option func(*Reader)

// ContentProcessor transforms converted content after link directives have
// been restored.
type ContentProcessor func(content string) (string, error)

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithKeyRules replaces DefaultKeyRules. Pass no rules to keep every
// lower-cased key as is.
func WithKeyRules(rules ...KeyRule) Option {
	return func(r *Reader) {
		r.keyRules = append([]KeyRule(nil), rules...)
	}
}

// WithContentProcessors appends processors run on every converted document,
// in order.
func WithContentProcessors(processors ...ContentProcessor) Option {
	return func(r *Reader) {
		r.processors = append(r.processors, processors...)
	}
}

// WithTitleFromContent makes Read fill a missing "title" from the first
// top-level heading of the converted content.
func WithTitleFromContent(enabled bool) Option {
	return func(r *Reader) {
		r.titleFromContent = enabled
	}
}
