package cue

import (
	"strings"
	"testing"
)

const exampleDocument = `language: eng
extended language: en-US
characteristics: SDH

00:00:00,000 --> 00:00:01,200

00:00:01,200 --> 00:00:03,400 !!!
this is

00:00:03,400 --> 00:00:07,600

00:00:07,600 --> 00:00:10,000
some english

00:00:10,000 --> 00:00:12,500

00:00:12,500 --> 00:00:15,000
subtitles

00:00:15,000 --> 00:00:16,100

00:00:16,100 --> 00:00:18,250 !!!
check it out!

00:00:18,250 --> 00:00:20,000

`

func TestParseExampleDocument(t *testing.T) {
	doc := Parse(exampleDocument)

	if doc.Header.Language != "eng" {
		t.Errorf("language: got %q, want %q", doc.Header.Language, "eng")
	}
	if doc.Header.ExtendedLanguageTag != "en-US" {
		t.Errorf(
			"extended language: got %q, want %q",
			doc.Header.ExtendedLanguageTag,
			"en-US",
		)
	}
	if !doc.Header.SDH {
		t.Error("expected SDH characteristic")
	}

	wantTexts := []string{
		"", "this is", "", "some english", "",
		"subtitles", "", "check it out!", "",
	}
	if len(doc.Cues) != len(wantTexts) {
		t.Fatalf("expected %d cues, got %d", len(wantTexts), len(doc.Cues))
	}
	for i, want := range wantTexts {
		if doc.Cues[i].Text != want {
			t.Errorf("cue %d: text %q, want %q", i+1, doc.Cues[i].Text, want)
		}
	}

	for i, c := range doc.Cues {
		wantForced := i == 1 || i == 7
		if c.Forced != wantForced {
			t.Errorf("cue %d: forced = %v, want %v", i+1, c.Forced, wantForced)
		}
	}

	third := doc.Cues[2]
	if third.Start.Seconds() != 3.4 {
		t.Errorf("cue 3: start = %v s, want 3.4", third.Start.Seconds())
	}
	if third.End.Seconds() != 7.6 {
		t.Errorf("cue 3: end = %v s, want 7.6", third.End.Seconds())
	}
	if third.Start.Value != 3400 || third.Start.Scale != MillisScale {
		t.Errorf("cue 3: start = %+v, want 3400 ms", third.Start)
	}
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name string
		text string
		want TrackHeader
	}{
		{
			name: "empty document",
			text: "",
			want: TrackHeader{},
		},
		{
			name: "fields in reverse order",
			text: "characteristics: SDH\nextended language: fr-CA\nlanguage: fra\n",
			want: TrackHeader{Language: "fra", ExtendedLanguageTag: "fr-CA", SDH: true},
		},
		{
			name: "surrounded by unrelated text",
			text: "some preamble\nlanguage: deu\ntrailing notes\n",
			want: TrackHeader{Language: "deu"},
		},
		{
			name: "first match per key wins",
			text: "language: eng\nlanguage: fra\n",
			want: TrackHeader{Language: "eng"},
		},
		{
			name: "characteristics is case-insensitive free text",
			text: "characteristics: includes sdh captions\n",
			want: TrackHeader{SDH: true},
		},
		{
			name: "characteristics without SDH",
			text: "characteristics: karaoke\n",
			want: TrackHeader{},
		},
		{
			name: "crlf line endings",
			text: "language: spa\r\nextended language: es-MX\r\n",
			want: TrackHeader{Language: "spa", ExtendedLanguageTag: "es-MX"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text).Header
			if got != tt.want {
				t.Errorf("header = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseAcceptsOutOfOrderBlocks(t *testing.T) {
	text := "00:00:10,000 --> 00:00:12,000\nlater\n\n" +
		"00:00:02,000 --> 00:00:04,000\nearlier\n"

	doc := Parse(text)
	if len(doc.Cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(doc.Cues))
	}
	// document order is preserved, no reordering or validation
	if doc.Cues[0].Text != "later" || doc.Cues[1].Text != "earlier" {
		t.Errorf(
			"cues out of document order: %q, %q",
			doc.Cues[0].Text,
			doc.Cues[1].Text,
		)
	}
	if doc.Cues[0].Start.Value <= doc.Cues[1].Start.Value {
		t.Error("expected first cue to start later than second")
	}
}

func TestParseSkipsNonMatchingText(t *testing.T) {
	text := "this is not a cue block\n1:2:3 --> 4:5:6\nshort timestamps\n\n" +
		"00:00:01,000 --> 00:00:02,000\nreal cue\n"

	doc := Parse(text)
	if len(doc.Cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(doc.Cues))
	}
	if doc.Cues[0].Text != "real cue" {
		t.Errorf("cue text = %q, want %q", doc.Cues[0].Text, "real cue")
	}
}

func TestParseForcedMarkerOnlyAfterTimestamp(t *testing.T) {
	text := "00:00:01,000 --> 00:00:02,000 !!!\nforced cue\n\n" +
		"00:00:02,000 --> 00:00:03,000\nplain !!! cue\n"

	doc := Parse(text)
	if len(doc.Cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(doc.Cues))
	}
	if !doc.Cues[0].Forced {
		t.Error("cue 1 should be forced")
	}
	if doc.Cues[1].Forced {
		t.Error("cue 2 should not be forced")
	}
	if doc.Cues[1].Text != "plain !!! cue" {
		t.Errorf("cue 2 text = %q", doc.Cues[1].Text)
	}
}

func TestParseLongTrackTimestamps(t *testing.T) {
	// integer millisecond accumulation stays exact over long tracks
	text := "01:23:45,678 --> 01:23:46,789\nlate cue\n"

	doc := Parse(text)
	if len(doc.Cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(doc.Cues))
	}
	wantStart := int64(1*3600000 + 23*60000 + 45*1000 + 678)
	if doc.Cues[0].Start.Value != wantStart {
		t.Errorf("start = %d ms, want %d", doc.Cues[0].Start.Value, wantStart)
	}
	if doc.Cues[0].End.Value != wantStart+1111 {
		t.Errorf("end = %d ms, want %d", doc.Cues[0].End.Value, wantStart+1111)
	}
}

func TestParseEmptyTextLineAtEndOfDocument(t *testing.T) {
	// gap cue as the last block, no trailing newline after its empty text
	text := "00:00:01,000 --> 00:00:02,000\ntext\n\n00:00:02,000 --> 00:00:03,000\n"

	doc := Parse(text)
	if len(doc.Cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(doc.Cues))
	}
	if doc.Cues[1].Text != "" {
		t.Errorf("cue 2 text = %q, want empty", doc.Cues[1].Text)
	}
}

func TestTimeRescale(t *testing.T) {
	tests := []struct {
		name  string
		ms    int64
		scale int32
		want  int64
	}{
		{"zero", 0, 600, 0},
		{"exact conversion", 3400, 600, 2040},
		{"one second", 1000, 600, 600},
		{"rounds to nearest tick", 1, 600, 1}, // 0.6 ticks rounds up
		{"same scale passthrough", 1234, 1000, 1234},
		{"long track stays exact", 5025678, 600, 3015407}, // 5025.678 s * 600 = 3015406.8
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Millis(tt.ms).Rescale(tt.scale)
			if got.Value != tt.want {
				t.Errorf(
					"Rescale(%d ms -> %d): got %d, want %d",
					tt.ms,
					tt.scale,
					got.Value,
					tt.want,
				)
			}
			if got.Scale != tt.scale {
				t.Errorf("scale = %d, want %d", got.Scale, tt.scale)
			}
		})
	}
}

func TestParseDocumentIsSelfContained(t *testing.T) {
	// parsing the same text twice yields equal, independent documents
	a := Parse(exampleDocument)
	b := Parse(exampleDocument)
	if len(a.Cues) != len(b.Cues) {
		t.Fatalf("cue counts differ: %d vs %d", len(a.Cues), len(b.Cues))
	}
	a.Cues[0].Text = strings.ToUpper("mutated")
	if b.Cues[0].Text == a.Cues[0].Text {
		t.Error("documents share cue storage")
	}
}
