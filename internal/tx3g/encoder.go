// Package tx3g encodes subtitle cues into 3GPP timed-text samples. The
// payload layout is a compatibility contract with the downstream timed-text
// decoder and must be reproduced bit-exactly.
package tx3g

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/janx2/subwriter/internal/cue"
	"github.com/janx2/subwriter/internal/mux"
)

const (
	// Timescale is the subtitle track timescale in ticks per second. 600
	// divides evenly by the common video frame rates.
	Timescale int32 = 600

	// forcedTag is the FourCC of the per-sample forced marker atom, 'frcd'.
	forcedTag uint32 = 0x66726364

	forcedAtomSize = 8

	// maxTextBytes is the largest text payload the 16-bit length prefix can
	// describe.
	maxTextBytes = math.MaxUint16
)

// TextTooLargeError reports cue text whose UTF-8 encoding exceeds the 16-bit
// length budget of the sample format.
type TextTooLargeError struct {
	ByteLen int
}

func (e *TextTooLargeError) Error() string {
	return fmt.Sprintf(
		"cue text is %d bytes, exceeds the %d-byte sample limit",
		e.ByteLen,
		maxTextBytes,
	)
}

// Encode produces the tx3g sample for one cue: a big-endian 16-bit text
// length (no terminator counted), the UTF-8 text bytes, and, for forced
// cues only, the 8-byte 'frcd' marker atom. Timing is rescaled from the
// parser's millisecond scale to the 600-tick track timescale here, at the
// encode boundary.
func Encode(c cue.Cue) (*mux.Sample, error) {
	text := []byte(c.Text)
	if len(text) > maxTextBytes {
		return nil, &TextTooLargeError{ByteLen: len(text)}
	}

	data := make([]byte, 0, 2+len(text)+forcedAtomSize)
	data = binary.BigEndian.AppendUint16(data, uint16(len(text)))
	data = append(data, text...)
	if c.Forced {
		data = binary.BigEndian.AppendUint32(data, forcedAtomSize)
		data = binary.BigEndian.AppendUint32(data, forcedTag)
	}

	start := c.Start.Rescale(Timescale)
	end := c.End.Rescale(Timescale)

	return &mux.Sample{
		Data:             data,
		Duration:         end.Value - start.Value,
		PresentationTime: start.Value,
		Size:             len(data),
	}, nil
}

// EncodeAll compiles a parsed document into its ordered sample sequence.
// Sample order equals cue order.
func EncodeAll(doc *cue.Document) ([]*mux.Sample, error) {
	samples := make([]*mux.Sample, 0, len(doc.Cues))
	for i, c := range doc.Cues {
		s, err := Encode(c)
		if err != nil {
			return nil, fmt.Errorf("cue %d: %w", i+1, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}
