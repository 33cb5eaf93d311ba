// Package packed decodes the on-disk ("packed") form of a `.musicdb`
// file into the flat chunk buffer the rest of the library parses.
//
// The file holds a single top-level chunk, signature "hfma", whose
// header describes the payload that follows. The payload underwent two
// transformations before being written:
//
//  1. It was compressed with DEFLATE (zlib framing).
//  2. Its leading bytes were encrypted with AES-128 in ECB mode.
//
// Encryption stops either at the header's declared maximum or at the
// last full 16-byte block, whichever comes first; anything after that
// point is compressed but stored in the clear, and must be logically
// re-joined with the decrypted bytes before inflation.
//
// The decompressed size is not recorded anywhere in the file, so the
// output buffer is grown speculatively from an 8x heuristic. The
// heuristic only affects allocation efficiency, never correctness.
package packed

import (
	"bytes"
	"crypto/aes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/simonhull/musicdb/internal/chunk"
)

// key decrypts iTunes and Apple Music library files. It has been
// public knowledge since at least 2010 (kafsemo.org/2010/12/10_itunes-10-database.html)
// and has no role in decrypting copyrighted or DRM-protected media; it
// only guards the user's own library listing, which the vendor
// applications already display to them.
var key = []byte("BHUILuilfghuila3")

// expandedSizeMultiplier is a moderately-upper-end guess at how much
// larger the unpacked data is compared to the packed form.
const expandedSizeMultiplier = 8

// SigFileInfo tags the top-level container chunk.
var SigFileInfo = chunk.Sig("hfma")

const cryptBlock = 16

// DecryptionError indicates the encrypted region could not be
// decrypted, usually because its length is not a whole number of
// cipher blocks. It means a corrupt or non-matching-format file.
type DecryptionError struct {
	Length int
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("decryption failure: encrypted region of %d bytes is not a multiple of %d", e.Length, cryptBlock)
}

// DecompressionError indicates the DEFLATE stream was corrupt.
type DecompressionError struct {
	Err error
}

func (e *DecompressionError) Error() string {
	return fmt.Sprintf("decompression failure: %v", e.Err)
}

func (e *DecompressionError) Unwrap() error {
	return e.Err
}

// FileInfo is the parsed "hfma" header. The entity counts are
// informational only; the authoritative counts live inside the decoded
// payload's own section headers.
type FileInfo struct {
	HeaderSize  uint32
	PayloadSize uint32

	FormatMajor uint16
	FormatMinor uint16

	// ApplicationVersion is the version string of the application that
	// wrote the file, e.g. "1.5.2.10".
	ApplicationVersion string

	TrackCount      uint32
	PlaylistCount   uint32
	CollectionCount uint32
	ArtistCount     uint32

	// MaxEncryptedBytes caps how much of the payload is encrypted. It
	// is untrusted input and is clamped against the real payload size
	// before use.
	MaxEncryptedBytes uint32
}

// ReadFileInfo parses the "hfma" header chunk at the cursor, leaving
// the cursor at the first payload byte.
func ReadFileInfo(c *chunk.Cursor) (*FileInfo, error) {
	offset := c.Pos()
	if err := c.Expect(SigFileInfo); err != nil {
		return nil, err
	}
	headerSize, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	payloadSize, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	major, err := c.ReadUint16()
	if err != nil {
		return nil, err
	}
	minor, err := c.ReadUint16()
	if err != nil {
		return nil, err
	}
	appVersion, err := c.ReadCStrBlock(0x20)
	if err != nil {
		return nil, err
	}
	if _, err := c.ReadUint64(); err != nil { // library persistent ID
		return nil, err
	}
	if _, err := c.ReadUint32(); err != nil { // file variant
		return nil, err
	}
	if err := c.Advance(8); err != nil { // unidentified
		return nil, err
	}
	var counts [4]uint32
	for i := range counts {
		if counts[i], err = c.ReadUint32(); err != nil {
			return nil, err
		}
	}
	maxEncrypted, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	// Trailing header bytes are reserved; skip to the declared end.
	if err := c.SeekTo(offset + int(headerSize)); err != nil {
		return nil, err
	}

	return &FileInfo{
		HeaderSize:         headerSize,
		PayloadSize:        payloadSize,
		FormatMajor:        major,
		FormatMinor:        minor,
		ApplicationVersion: appVersion,
		TrackCount:         counts[0],
		PlaylistCount:      counts[1],
		CollectionCount:    counts[2],
		ArtistCount:        counts[3],
		MaxEncryptedBytes:  maxEncrypted,
	}, nil
}

// Unpack transforms a whole packed file into its decoded chunk buffer.
// The input slice is never modified.
func Unpack(data []byte) ([]byte, *FileInfo, error) {
	c := chunk.NewCursor(data)
	info, err := ReadFileInfo(c)
	if err != nil {
		return nil, nil, err
	}
	payload := c.Remaining()

	// Clamp the declared encryption extent to the last whole cipher
	// block actually present; the field is untrusted.
	split := len(payload) &^ (cryptBlock - 1)
	if m := int(info.MaxEncryptedBytes); m < split {
		split = m
	}

	decrypted, err := decrypt(payload[:split])
	if err != nil {
		return nil, nil, err
	}

	decoded, err := inflate(io.MultiReader(bytes.NewReader(decrypted), bytes.NewReader(payload[split:])), len(payload))
	if err != nil {
		return nil, nil, err
	}
	return decoded, info, nil
}

// decrypt applies AES-128-ECB with no padding, returning a fresh
// buffer so the caller's data stays untouched.
func decrypt(src []byte) ([]byte, error) {
	if len(src)%cryptBlock != 0 {
		return nil, &DecryptionError{Length: len(src)}
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, len(src))
	for i := 0; i < len(src); i += cryptBlock {
		block.Decrypt(dst[i:i+cryptBlock], src[i:i+cryptBlock])
	}
	return dst, nil
}

// inflate decompresses the joined stream, growing speculatively since
// the true size is not stored in the file.
func inflate(r io.Reader, compressedSize int) ([]byte, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, &DecompressionError{Err: err}
	}
	defer zr.Close()

	var out bytes.Buffer
	out.Grow(compressedSize * expandedSizeMultiplier)
	if _, err := io.Copy(&out, zr); err != nil {
		return nil, &DecompressionError{Err: err}
	}
	return out.Bytes(), nil
}
