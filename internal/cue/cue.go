// Package cue parses plain-text subtitle cue documents into an ordered,
// time-stamped cue sequence plus track-level header fields.
package cue

// MillisScale is the timescale of parsed cue times: integer milliseconds.
const MillisScale int32 = 1000

// Time is a rational media time value: Value ticks at Scale ticks per second.
type Time struct {
	Value int64
	Scale int32
}

func Millis(ms int64) Time {
	return Time{Value: ms, Scale: MillisScale}
}

// Seconds returns the value as floating-point seconds. Display only; timing
// math stays in integer ticks.
func (t Time) Seconds() float64 {
	return float64(t.Value) / float64(t.Scale)
}

// Rescale converts t to a new timescale, rounding to the nearest tick.
func (t Time) Rescale(scale int32) Time {
	if t.Scale == scale {
		return t
	}
	num := t.Value * int64(scale)
	den := int64(t.Scale)
	return Time{Value: (num + den/2) / den, Scale: scale}
}

// TrackHeader carries the track-level fields extracted from a cue document.
// Missing fields keep their zero defaults.
type TrackHeader struct {
	Language            string
	ExtendedLanguageTag string
	SDH                 bool
}

// Cue is one subtitle entry: a time range, its text, and whether it must
// always display regardless of the viewer's subtitle preference.
type Cue struct {
	Text   string
	Start  Time
	End    Time
	Forced bool
}

// Document is the immutable result of parsing one cue document.
type Document struct {
	Header TrackHeader
	Cues   []Cue
}
