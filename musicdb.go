package musicdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/musicdb/internal/chunk"
	"github.com/simonhull/musicdb/internal/packed"
)

// FileInfo is an alias to packed.FileInfo, the parsed file header.
type FileInfo = packed.FileInfo

// Library is an opened library file: the parsed header plus the fully
// decoded entity view.
//
// The whole file is decoded up front; after Open returns, no file
// handle stays open and the Library is safe for concurrent reads.
//
//	lib, err := musicdb.Open(musicdb.DefaultPath())
//	if err != nil {
//		return err
//	}
//	for _, track := range lib.View.Tracks {
//		fmt.Println(track.Title)
//	}
type Library struct {
	// Path the library was read from, empty when decoded from memory.
	Path string

	// Info is the parsed file header.
	Info *FileInfo

	// AppVersion is Info.ApplicationVersion in parsed form.
	AppVersion AppVersion

	// View is the decoded entity graph.
	View *View

	// Warnings encountered during decoding (non-fatal issues)
	Warnings []Warning

	opts *openOptions

	// buffer is the decoded chunk data every View string aliases.
	buffer []byte
}

// Open reads and decodes a library file.
//
// Recoverable issues, like an entity missing a required sub-record,
// drop that entity and add to Library.Warnings instead of failing.
// Options customize that behavior:
//
//	lib, err := musicdb.Open(path,
//	    musicdb.WithStrictDecoding(),
//	    musicdb.WithLogger(logger),
//	)
func Open(path string, opts ...Option) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}
	lib, err := Decode(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	lib.Path = path
	return lib, nil
}

// OpenContext opens a file, checking the context before starting.
func OpenContext(ctx context.Context, path string, opts ...Option) (*Library, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany opens multiple library files concurrently, up to
// runtime.NumCPU() at a time. Results keep the order of the input
// paths. The first failure cancels the rest and is returned.
func OpenMany(ctx context.Context, paths ...string) ([]*Library, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Library, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			lib, err := OpenContext(ctx, path)
			if err != nil {
				return err
			}
			results[i] = lib
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Decode decodes an in-memory packed library file.
func Decode(data []byte, opts ...Option) (*Library, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	buffer, info, err := packed.Unpack(data)
	if err != nil {
		return nil, err
	}

	version, err := ParseAppVersion(info.ApplicationVersion)
	if err != nil {
		return nil, &CorruptedError{Reason: err.Error()}
	}

	d := &decoder{version: version, log: options.logger}
	view, err := d.view(chunk.NewCursor(buffer))
	if err != nil {
		return nil, err
	}

	lib := &Library{
		Info:       info,
		AppVersion: version,
		View:       view,
		Warnings:   d.warnings,
		opts:       options,
		buffer:     buffer,
	}

	if options.strict && len(lib.Warnings) > 0 {
		return nil, fmt.Errorf("strict decoding failed: %s", lib.Warnings[0])
	}
	if options.ignoreWarnings {
		lib.Warnings = nil
	}
	return lib, nil
}

// ExtractRaw runs only the unpack pipeline, returning the decoded
// chunk buffer without building a view. Useful for format inspection.
func ExtractRaw(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}
	buffer, _, err := packed.Unpack(data)
	return buffer, err
}

// Raw returns the decoded chunk buffer backing the view. Callers must
// not modify it.
func (l *Library) Raw() []byte {
	return l.buffer
}

// Reload re-reads the file the library was opened from, replacing the
// view. The vendor applications rewrite the file on changes, so this
// is how updates are picked up.
func (l *Library) Reload() error {
	if l.Path == "" {
		return fmt.Errorf("library was not opened from a file")
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return fmt.Errorf("read library: %w", err)
	}

	buffer, info, err := packed.Unpack(data)
	if err != nil {
		return err
	}
	version, err := ParseAppVersion(info.ApplicationVersion)
	if err != nil {
		return &CorruptedError{Reason: err.Error()}
	}

	d := &decoder{version: version, log: l.opts.logger}
	view, err := d.view(chunk.NewCursor(buffer))
	if err != nil {
		return err
	}

	l.Info = info
	l.AppVersion = version
	l.View = view
	l.Warnings = d.warnings
	if l.opts.ignoreWarnings {
		l.Warnings = nil
	}
	l.buffer = buffer
	return nil
}

// DefaultPath returns the location the current macOS application
// keeps its library at.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Music", "Music", "Music Library.musiclibrary", "Library.musicdb")
}
