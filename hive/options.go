package hive

import (
	"io"
	"log/slog"
)

// DefaultMaxDepth bounds key nesting during decode.
const DefaultMaxDepth = 512

type options struct {
	maxDepth int
	logger   *slog.Logger
	path     string
}

// Option configures Open and OpenBytes.
type Option func(*options)

// WithMaxDepth sets the deepest key level accepted (root = 0). Values <= 0
// restore the default.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = DefaultMaxDepth
		}
		o.maxDepth = n
	}
}

// WithLogger routes decode diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSourcePath records the path reported by (*Hive).SourcePath for hives built
// with OpenBytes.
func WithSourcePath(path string) Option {
	return func(o *options) { o.path = path }
}

func buildOptions(opts []Option) options {
	o := options{
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
