package musicdb

import (
	"github.com/simonhull/musicdb/internal/chunk"
)

var sigTrack = chunk.Sig("itma")

// Track is one media item of the library. String fields are absent
// when their sub-record is missing; the numeric properties are always
// present, since tracks without them are dropped during decoding.
type Track struct {
	ID       TrackID
	AlbumID  AlbumID
	ArtistID ArtistID

	Title           UTF16String
	AlbumName       UTF16String
	AlbumArtistName UTF16String
	ArtistName      UTF16String
	Genre           UTF16String
	Kind            UTF16String
	Composer        UTF16String
	Copyright       UTF16String
	Comment         UTF16String
	Grouping        UTF16String

	SortTitle           UTF16String
	SortAlbumName       UTF16String
	SortAlbumArtistName UTF16String
	SortArtistName      UTF16String
	SortComposer        UTF16String

	ClassicalWorkName      UTF16String
	ClassicalMovementTitle UTF16String

	// Purchase and DRM details; set on purchased or downloaded items.
	PurchaserEmail UTF16String
	PurchaserName  UTF16String
	FairPlayInfo   UTF16String

	// LocalFilePath is set when the media file is on disk.
	LocalFilePath UTF16String

	Numerics TrackNumerics

	// CloudInfo and DownloadInfo come from plist sub-records on
	// cloud-synced tracks.
	CloudInfo    *TrackCloudInfo
	DownloadInfo *CloudDownloadInfo
}

// Album looks the track's album up in the view. Dangling references
// return nil.
func (t *Track) Album(v *View) *Album {
	return v.Albums[t.AlbumID]
}

// Artist looks the track's artist up in the view.
func (t *Track) Artist(v *View) *Artist {
	return v.Artists[t.ArtistID]
}

func (d *decoder) readTrack(c *chunk.Cursor) (*Track, error) {
	if err := c.Expect(sigTrack); err != nil {
		return nil, err
	}
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
	pid, err := c.ReadUint64()
	if err != nil {
		return nil, err
	}
	if err := c.Advance(148); err != nil {
		return nil, err
	}
	albumID, err := c.ReadUint64()
	if err != nil {
		return nil, err
	}
	artistID, err := c.ReadUint64()
	if err != nil {
		return nil, err
	}
	if err := c.Advance(int(length) - 188); err != nil {
		return nil, err
	}

	t := &Track{
		ID:       TrackID(pid),
		AlbumID:  AlbumID(albumID),
		ArtistID: ArtistID(artistID),
	}
	var haveNumerics bool

	for b, err := range chunk.Sequence(c, int(bomaCount), d.boma) {
		if err != nil {
			return nil, err
		}
		switch b := b.(type) {
		case BomaUTF16:
			dst := t.utf16Field(b.Variant)
			if dst == nil {
				d.unexpected("tracks", b, c.Pos())
				continue
			}
			*dst = b.Value
		case TrackNumerics:
			t.Numerics = b
			haveNumerics = true
		case BomaBook:
			// Bookmark blobs duplicate the file path; nothing to keep.
		case BomaUTF8:
			switch b.Variant {
			case SubtypePlistTrackCloudInfo:
				info, err := parseTrackCloudInfo(b.Value)
				if err != nil {
					d.warn("tracks", err.Error(), c.Pos())
					continue
				}
				t.CloudInfo = info
			case SubtypePlistCloudDownloadInfo:
				info, err := parseCloudDownloadInfo(b.Value)
				if err != nil {
					d.warn("tracks", err.Error(), c.Pos())
					continue
				}
				t.DownloadInfo = info
			case SubtypeTrackLocalFilePathURL:
				// Duplicates the UTF-16 path field.
			default:
				d.unexpected("tracks", b, c.Pos())
			}
		default:
			d.unexpected("tracks", b, c.Pos())
		}
	}

	if !haveNumerics {
		return nil, &MissingBomaError{Entity: "track", ID: pid, Subtype: uint32(SubtypeTrackNumerics)}
	}
	return t, nil
}

// utf16Field maps a string sub-record to its destination, nil for
// variants tracks don't carry.
func (t *Track) utf16Field(variant BomaSubtype) *UTF16String {
	switch variant {
	case SubtypeTrackTitle:
		return &t.Title
	case SubtypeAlbum:
		return &t.AlbumName
	case SubtypeAlbumArtist:
		return &t.AlbumArtistName
	case SubtypeArtist:
		return &t.ArtistName
	case SubtypeGenre:
		return &t.Genre
	case SubtypeKind:
		return &t.Kind
	case SubtypeComposer:
		return &t.Composer
	case SubtypeCopyrightHolder:
		return &t.Copyright
	case SubtypeComment:
		return &t.Comment
	case SubtypeGrouping:
		return &t.Grouping
	case SubtypeSortTrackTitle:
		return &t.SortTitle
	case SubtypeSortAlbum:
		return &t.SortAlbumName
	case SubtypeSortAlbumArtist:
		return &t.SortAlbumArtistName
	case SubtypeSortArtist:
		return &t.SortArtistName
	case SubtypeSortComposer:
		return &t.SortComposer
	case SubtypeClassicalWorkName:
		return &t.ClassicalWorkName
	case SubtypeClassicalMovement:
		return &t.ClassicalMovementTitle
	case SubtypePurchaserEmail:
		return &t.PurchaserEmail
	case SubtypePurchaserName:
		return &t.PurchaserName
	case SubtypeFairPlayInfo:
		return &t.FairPlayInfo
	case SubtypeTrackLocalFilePath:
		return &t.LocalFilePath
	}
	return nil
}
