package musicdb

import (
	"time"

	"github.com/simonhull/musicdb/internal/chunk"
)

var sigCollection = chunk.Sig("lpma")

// PresetKind marks the built-in collections the vendor applications
// maintain themselves. User playlists have no preset kind.
type PresetKind uint8

const (
	PresetNone                PresetKind = 0
	PresetMusic               PresetKind = 4
	PresetPurchased           PresetKind = 19
	PresetGenius              PresetKind = 26
	PresetMusicVideos         PresetKind = 47
	PresetFavoriteSongs       PresetKind = 61
	PresetHiddenCloudTracks   PresetKind = 63
	PresetTvAndMovies         PresetKind = 64
	PresetDownloaded          PresetKind = 65
)

func (k PresetKind) String() string {
	switch k {
	case PresetNone:
		return "none"
	case PresetMusic:
		return "music"
	case PresetPurchased:
		return "purchased"
	case PresetGenius:
		return "genius"
	case PresetMusicVideos:
		return "music videos"
	case PresetFavoriteSongs:
		return "favorite songs"
	case PresetHiddenCloudTracks:
		return "hidden cloud playlist-only tracks"
	case PresetTvAndMovies:
		return "tv and movies"
	case PresetDownloaded:
		return "downloaded"
	}
	return "unrecognized"
}

func knownPresetKind(raw uint8) bool {
	switch PresetKind(raw) {
	case PresetNone, PresetMusic, PresetPurchased, PresetGenius,
		PresetMusicVideos, PresetFavoriteSongs, PresetHiddenCloudTracks,
		PresetTvAndMovies, PresetDownloaded:
		return true
	}
	return false
}

// Collection is a playlist: an ordered list of track references plus
// metadata. Collections without a name sub-record are dropped during
// decoding.
type Collection struct {
	ID CollectionID

	Name UTF16String

	// Info is the plist portion; absent on some built-in collections.
	Info *CollectionInfo

	// Members reference tracks by persistent ID, in playlist order.
	// References may dangle.
	Members []CollectionMember

	Preset           PresetKind
	CreationDate     time.Time
	ModificationDate time.Time
}

// Tracks resolves the member references against the view. Dangling
// members yield nil entries, keeping positions aligned with Members.
func (col *Collection) Tracks(v *View) []*Track {
	out := make([]*Track, len(col.Members))
	for i, m := range col.Members {
		out[i] = v.Tracks[m.Track]
	}
	return out
}

func (d *decoder) readCollection(c *chunk.Cursor) (*Collection, error) {
	if err := c.Expect(sigCollection); err != nil {
		return nil, err
	}
	start := c.Pos() - 4
	length, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	if err := c.Advance(4); err != nil {
		return nil, err
	}
	bomaCount, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	trackCount, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	if err := c.Advance(2); err != nil {
		return nil, err
	}
	creation, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	if err := c.Advance(4); err != nil {
		return nil, err
	}
	pid, err := c.ReadUint64()
	if err != nil {
		return nil, err
	}
	if err := c.Advance(41); err != nil {
		return nil, err
	}
	preset, err := c.ReadUint8()
	if err != nil {
		return nil, err
	}
	if err := c.Advance(58); err != nil {
		return nil, err
	}
	modification, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	if err := c.SeekTo(start + int(length)); err != nil {
		return nil, err
	}

	col := &Collection{
		ID:               CollectionID(pid),
		Members:          make([]CollectionMember, 0, trackCount),
		CreationDate:     macTime(creation),
		ModificationDate: macTime(modification),
	}
	if knownPresetKind(preset) {
		col.Preset = PresetKind(preset)
	} else {
		d.warn("collections", "unrecognized preset collection kind", start)
	}

	var haveName bool
	for b, err := range chunk.Sequence(c, int(bomaCount), d.boma) {
		if err != nil {
			return nil, err
		}
		switch b := b.(type) {
		case BomaUTF16:
			if b.Variant != SubtypePlaylistName {
				d.unexpected("collections", b, c.Pos())
				continue
			}
			col.Name = b.Value
			haveName = true
		case BomaUTF8:
			if b.Variant != SubtypePlistPlaylistInfo {
				d.unexpected("collections", b, c.Pos())
				continue
			}
			info, err := parseCollectionInfo(b.Value)
			if err != nil {
				d.warn("collections", err.Error(), c.Pos())
				continue
			}
			col.Info = info
		case CollectionMember:
			col.Members = append(col.Members, b)
		default:
			d.unexpected("collections", b, c.Pos())
		}
	}

	if !haveName {
		return nil, &MissingBomaError{Entity: "collection", ID: pid, Subtype: uint32(SubtypePlaylistName)}
	}
	return col, nil
}
