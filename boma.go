package musicdb

import (
	"bytes"
	"time"
	"unicode/utf8"

	"github.com/simonhull/musicdb/internal/chunk"
)

// Most of an entity's data lives in "boma" sub-records following the
// entity's own chunk. Every boma shares a 16-byte header; the subtype
// in it selects the payload layout.
var sigBoma = chunk.Sig("boma")

// BomaSubtype selects a boma payload layout. The known values fall
// into a handful of families: one-off binary layouts (numerics,
// collection members), UTF-16 strings, UTF-8 text (usually XML
// plists), and "book" variants holding macOS bookmark data.
type BomaSubtype uint32

const (
	SubtypeTrackNumerics    BomaSubtype = 0x1
	SubtypeCollectionMember BomaSubtype = 206

	// UTF-16 string payloads.
	SubtypeTrackTitle             BomaSubtype = 0x2
	SubtypeAlbum                  BomaSubtype = 0x3
	SubtypeArtist                 BomaSubtype = 0x4
	SubtypeGenre                  BomaSubtype = 0x5
	SubtypeKind                   BomaSubtype = 0x6
	SubtypeComment                BomaSubtype = 0x8
	SubtypeComposer               BomaSubtype = 0xC
	SubtypeGrouping               BomaSubtype = 14
	SubtypeAlbumArtist            BomaSubtype = 0x1B
	SubtypeSortTrackTitle         BomaSubtype = 0x1E
	SubtypeSortAlbum              BomaSubtype = 0x1F
	SubtypeSortArtist             BomaSubtype = 0x20
	SubtypeSortAlbumArtist        BomaSubtype = 0x21
	SubtypeSortComposer           BomaSubtype = 0x22
	SubtypeFairPlayInfo           BomaSubtype = 43
	SubtypeCopyrightHolder        BomaSubtype = 0x2E
	SubtypePurchaserEmail         BomaSubtype = 0x3B
	SubtypePurchaserName          BomaSubtype = 0x3C
	SubtypeClassicalWorkName      BomaSubtype = 63
	SubtypeClassicalMovement      BomaSubtype = 64
	SubtypeTrackLocalFilePath     BomaSubtype = 67
	SubtypePlaylistName           BomaSubtype = 200
	SubtypeAlbumName              BomaSubtype = 0x12C
	SubtypeAlbumArtistName        BomaSubtype = 0x12D
	SubtypeAlbumArtistNameCloud   BomaSubtype = 0x12E
	SubtypeSeriesTitle            BomaSubtype = 0x12F
	SubtypeAlbumCloudID           BomaSubtype = 0x133
	SubtypeArtistName             BomaSubtype = 400
	SubtypeArtistNameSorted       BomaSubtype = 401
	SubtypeArtistCloudID          BomaSubtype = 403
	SubtypeAccountCloudID         BomaSubtype = 800
	SubtypeAccountDisplayName     BomaSubtype = 801
	SubtypeAccountUsername        BomaSubtype = 802
	SubtypeAccountURLSafeID       BomaSubtype = 803
	SubtypeAccountAvatarURL       BomaSubtype = 804
	SubtypeUnidentifiedHex1       BomaSubtype = 0x1F4
	SubtypeManagedMediaFolder     BomaSubtype = 0x1F8
	SubtypeUnidentifiedHex2       BomaSubtype = 0x1FE

	// UTF-8 payloads, mostly XML plists.
	SubtypePlistTrackCloudInfo    BomaSubtype = 0x36
	SubtypePlistCloudDownloadInfo BomaSubtype = 0x38
	SubtypePlistArtworkURL        BomaSubtype = 0x192
	SubtypePlistPlaylistInfo      BomaSubtype = 0xCD
	SubtypeTrackLocalFilePathURL  BomaSubtype = 11

	// Bookmark blobs.
	SubtypeBookDefault BomaSubtype = 0x42
	SubtypeBookAlt     BomaSubtype = 0x1FD
)

// isUTF16 reports whether the subtype's payload is a UTF-16 string.
func (s BomaSubtype) isUTF16() bool {
	switch s {
	case SubtypeTrackTitle, SubtypeAlbum, SubtypeArtist, SubtypeGenre,
		SubtypeKind, SubtypeComment, SubtypeComposer, SubtypeGrouping,
		SubtypeAlbumArtist, SubtypeSortTrackTitle, SubtypeSortAlbum,
		SubtypeSortArtist, SubtypeSortAlbumArtist, SubtypeSortComposer,
		SubtypeFairPlayInfo, SubtypeCopyrightHolder, SubtypePurchaserEmail,
		SubtypePurchaserName, SubtypeClassicalWorkName, SubtypeClassicalMovement,
		SubtypeTrackLocalFilePath, SubtypePlaylistName, SubtypeAlbumName,
		SubtypeAlbumArtistName, SubtypeAlbumArtistNameCloud, SubtypeSeriesTitle,
		SubtypeAlbumCloudID, SubtypeArtistName, SubtypeArtistNameSorted,
		SubtypeArtistCloudID, SubtypeAccountCloudID, SubtypeAccountDisplayName,
		SubtypeAccountUsername, SubtypeAccountURLSafeID, SubtypeAccountAvatarURL,
		SubtypeUnidentifiedHex1, SubtypeManagedMediaFolder, SubtypeUnidentifiedHex2:
		return true
	}
	return false
}

// isUTF8 reports whether the subtype's payload is UTF-8 text.
func (s BomaSubtype) isUTF8() bool {
	switch s {
	case SubtypePlistTrackCloudInfo, SubtypePlistCloudDownloadInfo,
		SubtypePlistArtworkURL, SubtypePlistPlaylistInfo,
		SubtypeTrackLocalFilePathURL:
		return true
	}
	return false
}

// isBook reports whether the subtype's payload is bookmark data.
func (s BomaSubtype) isBook() bool {
	return s == SubtypeBookDefault || s == SubtypeBookAlt
}

// Boma is one decoded sub-record. The concrete types are
// TrackNumerics, CollectionMember, BomaUTF16, BomaUTF8, BomaBook and
// UnknownBoma.
type Boma interface {
	// Subtype returns the raw subtype value from the record header.
	Subtype() BomaSubtype
}

// BomaUTF16 is a string-valued sub-record. The string views the
// decoded buffer without copying.
type BomaUTF16 struct {
	Value   UTF16String
	Variant BomaSubtype
}

func (b BomaUTF16) Subtype() BomaSubtype { return b.Variant }

// BomaUTF8 is a UTF-8 text sub-record, usually an XML plist. Value
// aliases the decoded buffer.
type BomaUTF8 struct {
	Value   []byte
	Variant BomaSubtype
}

func (b BomaUTF8) Subtype() BomaSubtype { return b.Variant }

// TrackNumerics carries a track's numeric properties. Every track has
// exactly one of these; a track without one is dropped from the
// decoded view.
type TrackNumerics struct {
	// Bitrate is zero when unknown.
	Bitrate      KilobitsPerSecond
	DateAdded    time.Time
	DateModified time.Time

	// DurationMillis is the track length in milliseconds.
	DurationMillis uint32

	// FileSize is the media file size in bytes.
	FileSize uint32

	// Catalog IDs of the track and its album and artist in the global
	// catalog. Zero when the track is local-only.
	CatalogAlbum  CatalogAlbumID
	CatalogArtist CatalogArtistID
	CatalogTrack  CatalogTrackID
}

func (TrackNumerics) Subtype() BomaSubtype { return SubtypeTrackNumerics }

// Duration returns the track length.
func (n TrackNumerics) Duration() time.Duration {
	return time.Duration(n.DurationMillis) * time.Millisecond
}

// CollectionMember is one entry of a collection's track list,
// referring to a track by persistent ID. The referenced track is not
// guaranteed to exist.
type CollectionMember struct {
	Track TrackID
}

func (CollectionMember) Subtype() BomaSubtype { return SubtypeCollectionMember }

// BookValue is one entry of a bookmark blob: a path component or
// protocol marker when textual, opaque bytes otherwise.
type BookValue struct {
	Data []byte

	// Text is set when Data is plain UTF-8 with no embedded zero
	// bytes.
	Text bool
}

func (v BookValue) String() string {
	if v.Text {
		return string(v.Data)
	}
	return ""
}

// BomaBook is a macOS bookmark sub-record broken into its values.
type BomaBook struct {
	Values  []BookValue
	Variant BomaSubtype
}

func (b BomaBook) Subtype() BomaSubtype { return b.Variant }

// UnknownBoma preserves a sub-record with an unrecognized subtype as
// raw bytes so callers can still inspect it. Data aliases the decoded
// buffer.
type UnknownBoma struct {
	RawSubtype BomaSubtype
	Data       []byte
}

func (b UnknownBoma) Subtype() BomaSubtype { return b.RawSubtype }

// readBoma decodes one sub-record at the cursor. version gates a
// bookmark-layout change introduced in application 1.5.
func readBoma(c *chunk.Cursor, version AppVersion) (Boma, error) {
	if err := c.Expect(sigBoma); err != nil {
		return nil, err
	}
	if err := c.Advance(4); err != nil { // unidentified
		return nil, err
	}
	length, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	raw, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}

	subtype := BomaSubtype(raw)
	switch {
	case subtype == SubtypeTrackNumerics:
		return readTrackNumerics(c, length)
	case subtype == SubtypeCollectionMember:
		return readCollectionMember(c)
	case subtype.isUTF16():
		return readBomaUTF16(c, subtype)
	case subtype.isBook():
		return readBomaBook(c, length, subtype, version)
	case subtype.isUTF8():
		return readBomaUTF8(c, length, subtype)
	}

	data, err := c.ReadSlice(int(length) - 16)
	if err != nil {
		return nil, err
	}
	return UnknownBoma{RawSubtype: subtype, Data: data}, nil
}

func readBomaUTF16(c *chunk.Cursor, subtype BomaSubtype) (Boma, error) {
	if err := c.Advance(8); err != nil {
		return nil, err
	}
	byteLength, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	if err := c.Advance(8); err != nil {
		return nil, err
	}
	raw, err := c.ReadSlice(int(byteLength))
	if err != nil {
		return nil, err
	}
	return BomaUTF16{Value: NewUTF16String(raw), Variant: subtype}, nil
}

func readBomaUTF8(c *chunk.Cursor, length uint32, subtype BomaSubtype) (Boma, error) {
	if err := c.Advance(4); err != nil {
		return nil, err
	}
	// Local file URLs carry 16 extra bytes of leading junk.
	if subtype == SubtypeTrackLocalFilePathURL {
		if err := c.Advance(16); err != nil {
			return nil, err
		}
		length -= 16
	}
	value, err := c.ReadSlice(int(length) - 20)
	if err != nil {
		return nil, err
	}
	return BomaUTF8{Value: value, Variant: subtype}, nil
}

func readTrackNumerics(c *chunk.Cursor, length uint32) (Boma, error) {
	start := c.Pos() - 16
	var n TrackNumerics

	if err := c.SeekTo(start + 108); err != nil {
		return nil, err
	}
	bitrate, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	n.Bitrate = KilobitsPerSecond(bitrate)

	added, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	n.DateAdded = macTime(added)

	if err := c.SeekTo(start + 148); err != nil {
		return nil, err
	}
	modified, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	n.DateModified = macTime(modified)

	if err := c.SeekTo(start + 176); err != nil {
		return nil, err
	}
	if n.DurationMillis, err = c.ReadUint32(); err != nil {
		return nil, err
	}

	if err := c.SeekTo(start + 316); err != nil {
		return nil, err
	}
	if n.FileSize, err = c.ReadUint32(); err != nil {
		return nil, err
	}

	// Catalog references follow on records long enough to hold them.
	if length >= 332 {
		album, err := c.ReadUint32()
		if err != nil {
			return nil, err
		}
		artist, err := c.ReadUint32()
		if err != nil {
			return nil, err
		}
		track, err := c.ReadUint32()
		if err != nil {
			return nil, err
		}
		n.CatalogAlbum = CatalogAlbumID(album)
		n.CatalogArtist = CatalogArtistID(artist)
		n.CatalogTrack = CatalogTrackID(track)
	}

	if err := c.SeekTo(start + int(length)); err != nil {
		return nil, err
	}
	return n, nil
}

var sigMemberEntry = chunk.Sig("ipfa")

func readCollectionMember(c *chunk.Cursor) (Boma, error) {
	if err := c.Advance(4); err != nil {
		return nil, err
	}
	if err := c.Expect(sigMemberEntry); err != nil {
		return nil, err
	}
	length, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	if err := c.Advance(12); err != nil {
		return nil, err
	}
	pid, err := c.ReadUint64()
	if err != nil {
		return nil, err
	}
	if err := c.Advance(int(length) - 28); err != nil {
		return nil, err
	}
	return CollectionMember{Track: TrackID(pid)}, nil
}

var sigBook = chunk.Sig("book")

// bookLayoutChange is the application release after which only the
// default bookmark subtype still uses the bookmark layout.
var bookLayoutChange = AppVersion{Major: 1, Minor: 5}

func readBomaBook(c *chunk.Cursor, length uint32, subtype BomaSubtype, version AppVersion) (Boma, error) {
	if version.AtLeast(bookLayoutChange) && subtype != SubtypeBookDefault {
		// Repurposed to some other payload; skip it whole.
		if err := c.Advance(int(length) - 16); err != nil {
			return nil, err
		}
		return BomaBook{Variant: subtype}, nil
	}

	if err := c.Advance(4); err != nil {
		return nil, err
	}
	if err := c.Expect(sigBook); err != nil {
		return nil, err
	}
	end := c.Pos() - 24 + int(length)
	if err := c.Advance(48); err != nil {
		return nil, err
	}

	var values []BookValue
	for c.Pos() < end {
		entryLen, err := c.ReadUint32()
		if err != nil {
			return nil, err
		}
		if _, err := c.ReadUint32(); err != nil { // indicator
			return nil, err
		}
		data, err := c.ReadSlice(int(entryLen))
		if err != nil {
			return nil, err
		}
		// Entries are aligned to 4 bytes.
		if err := c.Advance(-int(entryLen%4) & 3); err != nil {
			return nil, err
		}
		values = append(values, BookValue{Data: data, Text: isBookText(data)})
	}
	return BomaBook{Values: values, Variant: subtype}, nil
}

// isBookText decides between opaque bytes and a path or protocol
// string. Two consecutive zero bytes anywhere mark binary data even
// when the rest would decode as UTF-8.
func isBookText(data []byte) bool {
	if bytes.Contains(data, []byte{0, 0}) {
		return false
	}
	return utf8.Valid(data)
}
