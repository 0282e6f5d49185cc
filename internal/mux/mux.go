// Package mux copies media samples from sources to container sinks, one
// concurrent lane per (source, sink) pair, and joins every lane at a single
// completion barrier before the container is finalized.
package mux

import (
	"context"
	"io"
)

// Sample is one encoded media sample: an opaque payload plus its timing in
// ticks at the owning track's timescale.
type Sample struct {
	Data             []byte
	Duration         int64
	PresentationTime int64
	Size             int
}

// Source produces samples in presentation order. Next returns io.EOF once
// the source is exhausted; exhaustion is terminal and repeated calls keep
// returning io.EOF, never an error.
type Source interface {
	Next() (*Sample, error)
}

// Sink accepts samples for one track. Ready blocks until the sink will
// accept another sample or ctx is done. Finish marks the track complete; a
// lane always finishes its sink, even on failure. Sinks are single-consumer
// and are never shared across lanes.
type Sink interface {
	Ready(ctx context.Context) error
	Append(s *Sample) error
	Finish()
}

// CueSource is a cursor over a pre-encoded, ordered sample sequence. The
// underlying slice is never mutated and may be shared read-only.
type CueSource struct {
	samples []*Sample
	cursor  int
}

func NewCueSource(samples []*Sample) *CueSource {
	return &CueSource{samples: samples}
}

// Next returns the sample at the cursor and advances it, or io.EOF once
// every sample has been produced.
func (c *CueSource) Next() (*Sample, error) {
	if c.cursor >= len(c.samples) {
		return nil, io.EOF
	}
	s := c.samples[c.cursor]
	c.cursor++
	return s, nil
}
