package musicdb

import (
	"github.com/simonhull/musicdb/internal/chunk"
)

var sigAlbum = chunk.Sig("iama")

// Album groups tracks released together. Only cloud-aware libraries
// fill the cloud fields.
type Album struct {
	ID AlbumID

	Name            UTF16String
	ArtistName      UTF16String
	ArtistNameCloud UTF16String
	SeriesTitle     UTF16String

	// CloudID is empty for local-only albums.
	CloudID CloudAlbumID
}

func (d *decoder) readAlbum(c *chunk.Cursor) (*Album, error) {
	if err := c.Expect(sigAlbum); err != nil {
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
	if err := c.Advance(int(length) - 24); err != nil {
		return nil, err
	}

	a := &Album{ID: AlbumID(pid)}
	for b, err := range chunk.Sequence(c, int(bomaCount), d.boma) {
		if err != nil {
			return nil, err
		}
		s, ok := b.(BomaUTF16)
		if !ok {
			d.unexpected("albums", b, c.Pos())
			continue
		}
		switch s.Variant {
		case SubtypeAlbumName:
			a.Name = s.Value
		case SubtypeAlbumArtistName:
			a.ArtistName = s.Value
		case SubtypeAlbumArtistNameCloud:
			a.ArtistNameCloud = s.Value
		case SubtypeSeriesTitle:
			a.SeriesTitle = s.Value
		case SubtypeAlbumCloudID:
			a.CloudID = CloudAlbumID(s.Value.String())
		default:
			d.unexpected("albums", s, c.Pos())
		}
	}
	return a, nil
}
