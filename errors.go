package musicdb

import (
	"fmt"

	"github.com/simonhull/musicdb/internal/chunk"
	"github.com/simonhull/musicdb/internal/packed"
)

// OutOfBoundsError is an alias to chunk.OutOfBoundsError, re-exported
// so callers never need to import the internal package.
type OutOfBoundsError = chunk.OutOfBoundsError

// SignatureError is an alias to chunk.SignatureError.
type SignatureError = chunk.SignatureError

// DecryptionError is an alias to packed.DecryptionError.
type DecryptionError = packed.DecryptionError

// DecompressionError is an alias to packed.DecompressionError.
type DecompressionError = packed.DecompressionError

// CorruptedError is returned when the decoded buffer's structure is
// invalid in a way the more specific error types don't cover.
type CorruptedError struct {
	Offset int
	Reason string
}

func (e *CorruptedError) Error() string {
	return fmt.Sprintf("corrupted data at offset %d: %s", e.Offset, e.Reason)
}

// MissingBomaError is returned when an entity's sub-records lack one
// the entity cannot be built without, such as a track missing its
// numeric properties or a collection missing its name.
//
// The decoders detect this only after the entity's chunk has been
// fully consumed, so the entity can be dropped with a warning while
// its siblings decode normally.
type MissingBomaError struct {
	Entity  string
	ID      uint64
	Subtype uint32
}

func (e *MissingBomaError) Error() string {
	return fmt.Sprintf("%s %016X is missing required sub-record %d", e.Entity, e.ID, e.Subtype)
}

// BadItemError is returned when an item inside a section cannot be
// decoded and the section has to be abandoned, since the cursor can no
// longer be trusted to sit on an item boundary.
type BadItemError struct {
	Section string
	Index   int
	Err     error
}

func (e *BadItemError) Error() string {
	return fmt.Sprintf("%s item %d: %v", e.Section, e.Index, e.Err)
}

func (e *BadItemError) Unwrap() error {
	return e.Err
}

// Warning represents a non-fatal issue encountered during decoding.
//
// Warnings indicate problems that don't prevent building the library
// view but may point at corrupted or unusual data. Examples include:
//   - An entity dropped for missing a required sub-record
//   - A duplicate persistent ID shadowing an earlier entity
//   - An unrecognized sub-record subtype carried through as raw bytes
//
// Warnings are collected in Library.Warnings during decoding.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "header", "tracks", "albums", "artists", "collections", "accounts"

	// Warning message
	Message string

	// Offset into the decoded buffer (0 if not applicable)
	Offset int
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
