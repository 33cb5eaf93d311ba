package musicdb

import (
	"log/slog"
)

// Option configures behavior when opening library files.
//
// Options use the functional options pattern:
//
//	lib, err := musicdb.Open("Library.musicdb",
//	    musicdb.WithStrictDecoding(),
//	    musicdb.WithLogger(logger),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	strict         bool         // Fail on any warning
	ignoreWarnings bool         // Suppress all warnings
	logger         *slog.Logger // Destination for decode diagnostics
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithStrictDecoding treats any warning as a fatal error.
//
// By default, musicdb keeps going when it encounters recoverable
// issues like a track missing its numeric properties or a duplicate
// persistent ID, recording a warning and decoding the rest of the
// file. With strict decoding enabled, the first such issue aborts.
func WithStrictDecoding() Option {
	return func(o *openOptions) {
		o.strict = true
	}
}

// WithIgnoreWarnings discards warnings instead of collecting them.
func WithIgnoreWarnings() Option {
	return func(o *openOptions) {
		o.ignoreWarnings = true
	}
}

// WithLogger directs decode diagnostics (dropped entities, duplicate
// IDs, unknown sub-record subtypes) to the given logger at Warn and
// Debug levels. Decoding is silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *openOptions) {
		if l != nil {
			o.logger = l
		}
	}
}
