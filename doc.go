// Package musicdb decodes Apple Music and iTunes `.musicdb` library
// files into a typed entity graph.
//
// # Quick Start
//
// Reading a library:
//
//	lib, err := musicdb.Open(musicdb.DefaultPath())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, t := range lib.View.Tracks {
//		fmt.Printf("%s - %s\n", t.ArtistName, t.Title)
//	}
//
// # File Format
//
// A `.musicdb` file is a plain "hfma" header followed by a payload
// that was DEFLATE-compressed and then partially AES-128-ECB
// encrypted. After unpacking, the payload is a flat sequence of
// chunks: 4-byte signatures with sized bodies, organized into entity
// sections (albums, artists, accounts, tracks, collections) separated
// by "hsma" boundaries. Most entity data lives in trailing "boma"
// sub-records dispatched by a numeric subtype.
//
// The decoding pipeline:
//
//	[packed file] -> decrypt -> inflate -> [chunk buffer] -> walk -> [View]
//
// # Philosophy
//
// 1. Zero-copy: decoded strings and raw payloads view the unpacked
// buffer directly. Holding any of them keeps the buffer alive, which
// for a library file is a few tens of megabytes at most.
//
// 2. Graceful degradation: entities missing required sub-records are
// dropped with a warning instead of failing the whole decode, and
// unrecognized sub-records are preserved as raw bytes.
//
// 3. Typed references: every entity kind has its own ID type, so
// cross-references cannot be mixed up at compile time. Dangling
// references resolve to nil, never to an error.
//
// # Error Handling
//
// musicdb distinguishes fatal errors from warnings:
//
//   - Fatal errors stop decoding entirely: failed decryption or
//     decompression, a malformed header, or a section whose items
//     cannot be delimited.
//   - Warnings cover recoverable issues: dropped entities, duplicate
//     persistent IDs, unexpected sub-record subtypes.
//
// Check Library.Warnings after opening, or use WithStrictDecoding to
// turn any warning into a failure.
//
// This package only reads library files. It never modifies them, and
// it does not touch the referenced media files at all.
package musicdb
