package musicdb

import (
	"github.com/simonhull/musicdb/internal/chunk"
)

var sigArtist = chunk.Sig("iAma")

// Artist is a performer referenced by tracks.
type Artist struct {
	ID ArtistID

	Name       UTF16String
	NameSorted UTF16String

	// CatalogID is the artist's global catalog number, zero for
	// local-only artists.
	CatalogID CatalogArtistID

	// CloudID is empty for local-only artists.
	CloudID CloudArtistID

	// ArtworkURL is a template URL for the artist's image.
	ArtworkURL string
}

func (d *decoder) readArtist(c *chunk.Cursor) (*Artist, error) {
	if err := c.Expect(sigArtist); err != nil {
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
	if err := c.Advance(28); err != nil {
		return nil, err
	}
	catalog, err := c.ReadUint32()
	if err != nil {
		return nil, err
	}
	if err := c.Advance(int(length) - 56); err != nil {
		return nil, err
	}

	a := &Artist{ID: ArtistID(pid), CatalogID: CatalogArtistID(catalog)}
	for b, err := range chunk.Sequence(c, int(bomaCount), d.boma) {
		if err != nil {
			return nil, err
		}
		switch b := b.(type) {
		case BomaUTF16:
			switch b.Variant {
			case SubtypeArtistName:
				a.Name = b.Value
			case SubtypeArtistNameSorted:
				a.NameSorted = b.Value
			case SubtypeArtistCloudID:
				a.CloudID = CloudArtistID(b.Value.String())
			default:
				d.unexpected("artists", b, c.Pos())
			}
		case BomaUTF8:
			if b.Variant != SubtypePlistArtworkURL {
				d.unexpected("artists", b, c.Pos())
				continue
			}
			url, err := parseArtworkURL(b.Value)
			if err != nil {
				d.warn("artists", err.Error(), c.Pos())
				continue
			}
			a.ArtworkURL = url
		default:
			d.unexpected("artists", b, c.Pos())
		}
	}
	return a, nil
}
