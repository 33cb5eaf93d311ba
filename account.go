package musicdb

import (
	"github.com/simonhull/musicdb/internal/chunk"
)

var sigAccount = chunk.Sig("isma")

// Account is a cloud account associated with the library. The account
// section is not present in every file, and files have been seen with
// more than one account.
type Account struct {
	ID AccountID

	DisplayName UTF16String
	Username    UTF16String

	// CloudID is "sp." followed by a UUID.
	CloudID CloudAccountID

	// URLSafeID appears in artwork URLs belonging to the account.
	URLSafeID UTF16String
	AvatarURL UTF16String
}

func (d *decoder) readAccount(c *chunk.Cursor) (*Account, error) {
	if err := c.Expect(sigAccount); err != nil {
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

	a := &Account{ID: AccountID(pid)}
	for b, err := range chunk.Sequence(c, int(bomaCount), d.boma) {
		if err != nil {
			return nil, err
		}
		s, ok := b.(BomaUTF16)
		if !ok {
			d.unexpected("accounts", b, c.Pos())
			continue
		}
		switch s.Variant {
		case SubtypeAccountCloudID:
			a.CloudID = CloudAccountID(s.Value.String())
		case SubtypeAccountDisplayName:
			a.DisplayName = s.Value
		case SubtypeAccountUsername:
			a.Username = s.Value
		case SubtypeAccountURLSafeID:
			a.URLSafeID = s.Value
		case SubtypeAccountAvatarURL:
			a.AvatarURL = s.Value
		default:
			d.unexpected("accounts", s, c.Pos())
		}
	}
	return a, nil
}
