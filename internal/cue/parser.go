package cue

import (
	"regexp"
	"strconv"
	"strings"
)

// Header fields are single-line "key: value" entries anywhere in the
// document; only the first match per key counts.
var (
	languageRe        = regexp.MustCompile(`(?m)^language:[ \t]*(.+?)[ \t]*\r?$`)
	extendedLangRe    = regexp.MustCompile(`(?m)^extended language:[ \t]*(.+?)[ \t]*\r?$`)
	characteristicsRe = regexp.MustCompile(`(?m)^characteristics:[ \t]*(.+?)[ \t]*\r?$`)

	// HH:MM:SS,mmm --> HH:MM:SS,mmm with an optional trailing forced marker,
	// followed by the cue text on the next line (which may be empty).
	cueBlockRe = regexp.MustCompile(
		`(?m)^(\d{2}):(\d{2}):(\d{2}),(\d{3}) --> (\d{2}):(\d{2}):(\d{2}),(\d{3})( !!!)?\r?\n(.*?)\r?$`,
	)
)

// Parse turns a cue document's full text into a Document. It never fails:
// unmatched header fields keep their defaults and body text that does not
// form a cue block is skipped. Blocks are taken strictly in document order;
// overlapping or backward-in-time blocks are accepted as-is.
func Parse(text string) *Document {
	doc := &Document{Header: parseHeader(text)}

	for _, m := range cueBlockRe.FindAllStringSubmatch(text, -1) {
		doc.Cues = append(doc.Cues, Cue{
			Text:   m[10],
			Start:  Millis(timestampMillis(m[1], m[2], m[3], m[4])),
			End:    Millis(timestampMillis(m[5], m[6], m[7], m[8])),
			Forced: m[9] != "",
		})
	}
	return doc
}

func parseHeader(text string) TrackHeader {
	var hdr TrackHeader

	if m := languageRe.FindStringSubmatch(text); m != nil {
		hdr.Language = m[1]
	}
	if m := extendedLangRe.FindStringSubmatch(text); m != nil {
		hdr.ExtendedLanguageTag = m[1]
	}
	if m := characteristicsRe.FindStringSubmatch(text); m != nil {
		// only the SDH token is recognized; the rest of the line is free text
		hdr.SDH = strings.Contains(strings.ToUpper(m[1]), "SDH")
	}
	return hdr
}

// timestampMillis sums the timestamp components as integer milliseconds, so
// long tracks accumulate no floating-point rounding error. The components
// are all-digit strings guaranteed by the block regexp.
func timestampMillis(h, m, s, ms string) int64 {
	hv, _ := strconv.ParseInt(h, 10, 64)
	mv, _ := strconv.ParseInt(m, 10, 64)
	sv, _ := strconv.ParseInt(s, 10, 64)
	msv, _ := strconv.ParseInt(ms, 10, 64)
	return hv*3600000 + mv*60000 + sv*1000 + msv
}
