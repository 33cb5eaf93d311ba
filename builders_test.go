package musicdb

import (
	"bytes"
	"encoding/binary"
	"unicode/utf16"
)

// Builders assembling synthetic chunk data for tests. Layouts mirror
// what the decoders expect; lengths are computed, not hard-coded.

type chunkBuilder struct {
	buf bytes.Buffer
}

func (b *chunkBuilder) sig(s string) *chunkBuilder {
	b.buf.WriteString(s)
	return b
}

func (b *chunkBuilder) u8(v uint8) *chunkBuilder {
	b.buf.WriteByte(v)
	return b
}

func (b *chunkBuilder) u16(v uint16) *chunkBuilder {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.buf.Write(tmp[:])
	return b
}

func (b *chunkBuilder) u32(v uint32) *chunkBuilder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf.Write(tmp[:])
	return b
}

func (b *chunkBuilder) u64(v uint64) *chunkBuilder {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	b.buf.Write(tmp[:])
	return b
}

func (b *chunkBuilder) raw(data []byte) *chunkBuilder {
	b.buf.Write(data)
	return b
}

func (b *chunkBuilder) zeros(n int) *chunkBuilder {
	b.buf.Write(make([]byte, n))
	return b
}

func (b *chunkBuilder) bytes() []byte {
	return b.buf.Bytes()
}

func utf16Bytes(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, len(units)*2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(out[i*2:], u)
	}
	return out
}

// bomaHeader is the shared 16-byte sub-record header.
func bomaHeader(b *chunkBuilder, length int, subtype BomaSubtype) {
	b.sig("boma").u32(0).u32(uint32(length)).u32(uint32(subtype))
}

func buildUTF16Boma(variant BomaSubtype, s string) []byte {
	payload := utf16Bytes(s)
	b := &chunkBuilder{}
	bomaHeader(b, 36+len(payload), variant)
	b.zeros(8).u32(uint32(len(payload))).zeros(8).raw(payload)
	return b.bytes()
}

func buildUTF8Boma(variant BomaSubtype, text string) []byte {
	b := &chunkBuilder{}
	bomaHeader(b, 20+len(text), variant)
	b.zeros(4).raw([]byte(text))
	return b.bytes()
}

func buildUnknownBoma(subtype BomaSubtype, data []byte) []byte {
	b := &chunkBuilder{}
	bomaHeader(b, 16+len(data), subtype)
	b.raw(data)
	return b.bytes()
}

type numericsFields struct {
	bitrate        uint32
	dateAdded      uint32
	dateModified   uint32
	durationMillis uint32
	fileSize       uint32
	catalogAlbum   uint32
	catalogArtist  uint32
	catalogTrack   uint32
}

func buildNumericsBoma(f numericsFields) []byte {
	const length = 332
	b := &chunkBuilder{}
	bomaHeader(b, length, SubtypeTrackNumerics)
	b.zeros(108 - 16)
	b.u32(f.bitrate).u32(f.dateAdded)
	b.zeros(148 - 116)
	b.u32(f.dateModified)
	b.zeros(176 - 152)
	b.u32(f.durationMillis)
	b.zeros(316 - 180)
	b.u32(f.fileSize)
	b.u32(f.catalogAlbum).u32(f.catalogArtist).u32(f.catalogTrack)
	return b.bytes()
}

func buildMemberBoma(track TrackID) []byte {
	b := &chunkBuilder{}
	bomaHeader(b, 48, SubtypeCollectionMember)
	b.zeros(4).sig("ipfa").u32(28).zeros(12).u64(uint64(track))
	return b.bytes()
}

// buildBookBoma lays out bookmark entries with 4-byte alignment.
func buildBookBoma(variant BomaSubtype, entries ...[]byte) []byte {
	var body bytes.Buffer
	for _, e := range entries {
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], uint32(len(e)))
		body.Write(tmp[:])
		body.Write([]byte{1, 1, 0, 0}) // indicator
		body.Write(e)
		body.Write(make([]byte, -len(e)%4&3))
	}
	b := &chunkBuilder{}
	bomaHeader(b, 24+48+body.Len(), variant)
	b.zeros(4).sig("book").zeros(48).raw(body.Bytes())
	return b.bytes()
}

func buildTrackChunk(id TrackID, album AlbumID, artist ArtistID, bomas ...[]byte) []byte {
	b := &chunkBuilder{}
	b.sig("itma").u32(188).u32(0).u32(uint32(len(bomas)))
	b.u64(uint64(id)).zeros(148).u64(uint64(album)).u64(uint64(artist))
	for _, boma := range bomas {
		b.raw(boma)
	}
	return b.bytes()
}

func buildAlbumChunk(id AlbumID, bomas ...[]byte) []byte {
	b := &chunkBuilder{}
	b.sig("iama").u32(24).u32(0).u32(uint32(len(bomas))).u64(uint64(id))
	for _, boma := range bomas {
		b.raw(boma)
	}
	return b.bytes()
}

func buildArtistChunk(id ArtistID, catalog CatalogArtistID, bomas ...[]byte) []byte {
	b := &chunkBuilder{}
	b.sig("iAma").u32(56).u32(0).u32(uint32(len(bomas))).u64(uint64(id))
	b.zeros(28).u32(uint32(catalog))
	for _, boma := range bomas {
		b.raw(boma)
	}
	return b.bytes()
}

func buildAccountChunk(id AccountID, bomas ...[]byte) []byte {
	b := &chunkBuilder{}
	b.sig("isma").u32(24).u32(0).u32(uint32(len(bomas))).u64(uint64(id))
	for _, boma := range bomas {
		b.raw(boma)
	}
	return b.bytes()
}

type collectionFields struct {
	id           CollectionID
	trackCount   uint32
	creation     uint32
	modification uint32
	preset       uint8
}

func buildCollectionChunk(f collectionFields, bomas ...[]byte) []byte {
	const length = 200
	b := &chunkBuilder{}
	b.sig("lpma").u32(length).u32(0).u32(uint32(len(bomas))).u32(f.trackCount)
	b.zeros(2)
	b.u32(f.creation)
	b.zeros(4)
	b.u64(uint64(f.id))
	b.zeros(41)
	b.u8(f.preset)
	b.zeros(58)
	b.u32(f.modification)
	b.zeros(length - 142)
	for _, boma := range bomas {
		b.raw(boma)
	}
	return b.bytes()
}

func buildBoundary(subtype uint32) []byte {
	b := &chunkBuilder{}
	b.sig("hsma").u32(16).u32(0).u32(subtype)
	return b.bytes()
}

func buildHeaderRepeat() []byte {
	b := &chunkBuilder{}
	b.sig("hfma").u32(8)
	return b.bytes()
}

// buildListChunk wraps items in a list or map section chunk.
func buildListChunk(sig string, items ...[]byte) []byte {
	b := &chunkBuilder{}
	b.sig(sig).u32(12).u32(uint32(len(items)))
	for _, item := range items {
		b.raw(item)
	}
	return b.bytes()
}

type viewParts struct {
	library     [][]byte
	albums      [][]byte
	artists     [][]byte
	accounts    [][]byte // nil to omit the section
	tracks      [][]byte
	collections [][]byte
}

// buildViewBuffer assembles a whole decoded buffer in section order.
func buildViewBuffer(p viewParts) []byte {
	var out bytes.Buffer
	out.Write(buildBoundary(3))
	out.Write(buildHeaderRepeat())
	out.Write(buildBoundary(6))
	out.Write(buildListChunk("plma", p.library...))
	out.Write(buildBoundary(4))
	out.Write(buildListChunk("lama", p.albums...))
	out.Write(buildBoundary(5))
	out.Write(buildListChunk("lAma", p.artists...))
	out.Write(buildBoundary(15))
	if p.accounts != nil {
		out.Write(buildListChunk("Lsma", p.accounts...))
		out.Write(buildBoundary(1))
	}
	out.Write(buildListChunk("ltma", p.tracks...))
	out.Write(buildBoundary(2))
	out.Write(buildListChunk("lPma", p.collections...))
	return out.Bytes()
}
