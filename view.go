package musicdb

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/simonhull/musicdb/internal/chunk"
)

var (
	sigBoundary     = chunk.Sig("hsma")
	sigHeaderRepeat = chunk.Sig("hfma")

	sigLibraryMaster  = chunk.Sig("plma")
	sigAlbumMap       = chunk.Sig("lama")
	sigArtistMap      = chunk.Sig("lAma")
	sigAccountList    = chunk.Sig("Lsma")
	sigTrackMap       = chunk.Sig("ltma")
	sigCollectionList = chunk.Sig("lPma")
)

// Section boundary subtypes observed in the wild. An unknown value
// means the walk is lost and decoding aborts.
const (
	sectionFileEntry   = 3
	sectionLibrary     = 6
	sectionAlbums      = 4
	sectionArtists     = 5
	sectionAccounts    = 15
	sectionTracks      = 1
	sectionCollections = 2
)

// View is the decoded library: every entity section of the file,
// cross-referenced by persistent ID. All strings and raw byte fields
// alias one decoded buffer, so a View keeps that buffer reachable.
type View struct {
	// Library holds the library-wide sub-records of the master
	// section, preserved as-is.
	Library []Boma

	Albums  map[AlbumID]*Album
	Artists map[ArtistID]*Artist

	// Accounts is nil when the file has no account section.
	Accounts []*Account

	Tracks map[TrackID]*Track

	// Collections keep their file order.
	Collections []*Collection
}

// Collection finds a collection by persistent ID.
func (v *View) Collection(id CollectionID) *Collection {
	for _, col := range v.Collections {
		if col.ID == id {
			return col
		}
	}
	return nil
}

// Account finds an account by persistent ID.
func (v *View) Account(id AccountID) *Account {
	for _, a := range v.Accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// RetainTracks removes every track the predicate rejects, along with
// collection members referencing it. Use it to slim a view down before
// longer-term retention.
func (v *View) RetainTracks(keep func(*Track) bool) {
	for id, t := range v.Tracks {
		if !keep(t) {
			delete(v.Tracks, id)
		}
	}
	for _, col := range v.Collections {
		kept := col.Members[:0]
		for _, m := range col.Members {
			if _, ok := v.Tracks[m.Track]; ok {
				kept = append(kept, m)
			}
		}
		col.Members = kept
	}
}

// decoder carries shared decode state: the writing application's
// version, the configured logger, and the warnings accumulated so far.
type decoder struct {
	version  AppVersion
	log      *slog.Logger
	warnings []Warning
}

func (d *decoder) boma(c *chunk.Cursor) (Boma, error) {
	return readBoma(c, d.version)
}

func (d *decoder) warn(stage, msg string, offset int) {
	d.log.Warn(msg, "stage", stage, "offset", offset)
	d.warnings = append(d.warnings, Warning{Stage: stage, Message: msg, Offset: offset})
}

// Subtypes that show up regularly but are not understood yet; they are
// preserved as UnknownBoma without a warning.
func tolerated(s BomaSubtype) bool {
	return s == 23 || s == 201 || s == 202
}

// unexpected records a sub-record showing up on an entity kind that
// has no use for it.
func (d *decoder) unexpected(stage string, b Boma, offset int) {
	if u, ok := b.(UnknownBoma); ok && tolerated(u.RawSubtype) {
		d.log.Debug("tolerated unknown sub-record", "stage", stage, "subtype", uint32(u.RawSubtype), "offset", offset)
		return
	}
	d.warn(stage, fmt.Sprintf("unexpected sub-record subtype %d", uint32(b.Subtype())), offset)
}

func (d *decoder) boundary(c *chunk.Cursor) error {
	start := c.Pos()
	if err := c.Expect(sigBoundary); err != nil {
		return err
	}
	nextOffset, err := c.ReadUint32()
	if err != nil {
		return err
	}
	if _, err := c.ReadUint32(); err != nil { // associated sections length
		return err
	}
	subtype, err := c.ReadUint32()
	if err != nil {
		return err
	}
	switch subtype {
	case sectionFileEntry, sectionLibrary, sectionAlbums, sectionArtists,
		sectionAccounts, sectionTracks, sectionCollections:
	default:
		return &CorruptedError{Offset: start, Reason: fmt.Sprintf("unknown section boundary subtype %d", subtype)}
	}
	return c.SeekTo(start + int(nextOffset))
}

// headerRepeat skips the copy of the file header embedded in the first
// section.
func (d *decoder) headerRepeat(c *chunk.Cursor) error {
	start := c.Pos()
	if err := c.Expect(sigHeaderRepeat); err != nil {
		return err
	}
	length, err := c.ReadUint32()
	if err != nil {
		return err
	}
	return c.SeekTo(start + int(length))
}

// listHeader consumes a list or map chunk's own header, returning the
// declared item count with the cursor on the first item.
func listHeader(c *chunk.Cursor, sig chunk.Signature) (int, error) {
	start := c.Pos()
	if err := c.Expect(sig); err != nil {
		return 0, err
	}
	length, err := c.ReadUint32()
	if err != nil {
		return 0, err
	}
	count, err := c.ReadUint32()
	if err != nil {
		return 0, err
	}
	return int(count), c.SeekTo(start + int(length))
}

// decodeList reads a list section, isolating entities that fail with
// MissingBomaError: those are dropped with a warning while their
// siblings decode normally. Any other item failure abandons the
// section, since the cursor can no longer be trusted.
func decodeList[T any](d *decoder, c *chunk.Cursor, sig chunk.Signature, stage string, read func(*chunk.Cursor) (*T, error)) ([]*T, error) {
	count, err := listHeader(c, sig)
	if err != nil {
		return nil, err
	}
	items := make([]*T, 0, count)
	for i := range count {
		item, err := read(c)
		if err != nil {
			var missing *MissingBomaError
			if errors.As(err, &missing) {
				d.warn(stage, missing.Error(), c.Pos())
				continue
			}
			return nil, &BadItemError{Section: stage, Index: i, Err: err}
		}
		items = append(items, item)
	}
	return items, nil
}

// decodeMap is decodeList keyed by persistent ID, last write winning
// on duplicates.
func decodeMap[K comparable, T any](d *decoder, c *chunk.Cursor, sig chunk.Signature, stage string, read func(*chunk.Cursor) (*T, error), key func(*T) K) (map[K]*T, error) {
	items, err := decodeList(d, c, sig, stage, read)
	if err != nil {
		return nil, err
	}
	m := make(map[K]*T, len(items))
	for _, item := range items {
		k := key(item)
		if _, dup := m[k]; dup {
			d.warn(stage, fmt.Sprintf("duplicate persistent ID %v", k), c.Pos())
		}
		m[k] = item
	}
	return m, nil
}

// view walks the section sequence of a decoded buffer and assembles
// the entity graph.
func (d *decoder) view(c *chunk.Cursor) (*View, error) {
	if err := d.boundary(c); err != nil {
		return nil, err
	}
	if err := d.headerRepeat(c); err != nil {
		return nil, err
	}

	if err := d.boundary(c); err != nil {
		return nil, err
	}
	libraryCount, err := listHeader(c, sigLibraryMaster)
	if err != nil {
		return nil, err
	}
	library, err := chunk.Collect(c, libraryCount, d.boma)
	if err != nil {
		return nil, &BadItemError{Section: "library", Index: len(library), Err: err}
	}

	if err := d.boundary(c); err != nil {
		return nil, err
	}
	albums, err := decodeMap(d, c, sigAlbumMap, "albums", d.readAlbum, func(a *Album) AlbumID { return a.ID })
	if err != nil {
		return nil, err
	}

	if err := d.boundary(c); err != nil {
		return nil, err
	}
	artists, err := decodeMap(d, c, sigArtistMap, "artists", d.readArtist, func(a *Artist) ArtistID { return a.ID })
	if err != nil {
		return nil, err
	}

	if err := d.boundary(c); err != nil {
		return nil, err
	}

	// The account section does not exist in every file. When present
	// it brings its own trailing boundary.
	var accounts []*Account
	if sig, err := c.PeekSignature(); err == nil && sig == sigAccountList {
		accounts, err = decodeList(d, c, sigAccountList, "accounts", d.readAccount)
		if err != nil {
			return nil, err
		}
		if err := d.boundary(c); err != nil {
			return nil, err
		}
	}

	tracks, err := decodeMap(d, c, sigTrackMap, "tracks", d.readTrack, func(t *Track) TrackID { return t.ID })
	if err != nil {
		return nil, err
	}

	if err := d.boundary(c); err != nil {
		return nil, err
	}
	collections, err := decodeList(d, c, sigCollectionList, "collections", d.readCollection)
	if err != nil {
		return nil, err
	}

	return &View{
		Library:     library,
		Albums:      albums,
		Artists:     artists,
		Accounts:    accounts,
		Tracks:      tracks,
		Collections: collections,
	}, nil
}
