package tx3g

import (
	"encoding/binary"

	"github.com/janx2/subwriter/internal/cue"
)

// Accessibility characteristics advertised on compiled subtitle tracks.
const (
	CharacteristicTranscribesDialog      = "public.accessibility.transcribes-spoken-dialog"
	CharacteristicDescribesMusicAndSound = "public.accessibility.describes-music-and-sound-for-accessibility"
)

// TrackCharacteristics returns the media characteristic tags for a track
// with the given header. Every subtitle track transcribes spoken dialog;
// SDH tracks additionally describe music and sound.
func TrackCharacteristics(hdr cue.TrackHeader) []string {
	tags := []string{CharacteristicTranscribesDialog}
	if hdr.SDH {
		tags = append(tags, CharacteristicDescribesMusicAndSound)
	}
	return tags
}

const (
	defaultFontID   = 1
	defaultFontName = "Serif"
	defaultFontSize = 12
)

// SampleDescription returns the serialized 'tx3g' sample entry shared by
// every sample in a track: centered bottom justification, opaque black
// background, a zero-size default text box, one default white style record,
// and a single-entry font table. It is a constant record, emitted once when
// the track's sink is opened.
func SampleDescription() []byte {
	b := make([]byte, 0, 64)
	b = binary.BigEndian.AppendUint32(b, 0) // box size, patched below
	b = append(b, "tx3g"...)

	// SampleEntry header
	b = append(b, make([]byte, 6)...)       // reserved
	b = binary.BigEndian.AppendUint16(b, 1) // data reference index

	b = binary.BigEndian.AppendUint32(b, 0)    // display flags
	b = append(b, 0x01, 0xff)                  // justification: center, bottom
	b = append(b, 0x00, 0x00, 0x00, 0xff)      // background rgba: opaque black
	b = append(b, make([]byte, 8)...)          // default text box: zero size
	b = binary.BigEndian.AppendUint16(b, 0)    // style start char
	b = binary.BigEndian.AppendUint16(b, 0)    // style end char
	b = binary.BigEndian.AppendUint16(b, defaultFontID)
	b = append(b, 0x00, defaultFontSize)       // plain face, font size
	b = append(b, 0xff, 0xff, 0xff, 0xff)      // text rgba: opaque white

	// 'ftab' font table with the single built-in entry
	ftabSize := 8 + 2 + 2 + 1 + len(defaultFontName)
	b = binary.BigEndian.AppendUint32(b, uint32(ftabSize))
	b = append(b, "ftab"...)
	b = binary.BigEndian.AppendUint16(b, 1) // entry count
	b = binary.BigEndian.AppendUint16(b, defaultFontID)
	b = append(b, byte(len(defaultFontName)))
	b = append(b, defaultFontName...)

	binary.BigEndian.PutUint32(b[:4], uint32(len(b)))
	return b
}
