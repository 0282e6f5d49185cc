// Package container adapts an MP4 muxer into the sink/finalize collaborator
// the scheduler copies into. Each subtitle track becomes one track in a
// fragmented MP4: init segment with the tx3g sample entry, language and
// characteristic metadata, then one media fragment per track.
package container

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/Eyevinn/mp4ff/mp4"
	"golang.org/x/text/language"

	"github.com/janx2/subwriter/internal/mux"
)

// TrackOptions describes one subtitle track to be added to the container.
type TrackOptions struct {
	Language            string // author language code, any recognizable form
	ExtendedLanguageTag string // BCP-47 tag, empty to omit
	Characteristics     []string
	SampleDescription   []byte // serialized sample entry shared by all samples
	Timescale           uint32
}

// Writer accumulates subtitle tracks and writes the fragmented MP4 on
// Finalize. Sinks buffer their samples; ownership of a sample transfers to
// the sink on append.
type Writer struct {
	path string

	mu    sync.Mutex
	init  *mp4.InitSegment
	sinks []*trackSink
}

func NewWriter(path string) *Writer {
	return &Writer{path: path, init: mp4.CreateEmptyInit()}
}

// OpenSink adds one subtitle track to the container and returns the sink the
// scheduler appends that track's samples to.
func (w *Writer) OpenSink(opts TrackOptions) (mux.Sink, error) {
	if opts.Timescale == 0 {
		return nil, fmt.Errorf("open sink: timescale must be set")
	}
	if len(opts.SampleDescription) == 0 {
		return nil, fmt.Errorf("open sink: sample description must be set")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.init.AddEmptyTrack(opts.Timescale, "subtitle", mdhdLanguage(opts.Language))
	trak := w.init.Moov.Traks[len(w.init.Moov.Traks)-1]

	trak.Mdia.Minf.Stbl.Stsd.AddChild(newRawBox(opts.SampleDescription))

	if opts.ExtendedLanguageTag != "" {
		trak.Mdia.AddChild(&mp4.ElngBox{Language: opts.ExtendedLanguageTag})
	}
	if len(opts.Characteristics) > 0 {
		udta := &mp4.UdtaBox{}
		for _, tag := range opts.Characteristics {
			udta.AddChild(newTagcBox(tag))
		}
		trak.AddChild(udta)
	}

	sink := &trackSink{trackID: trak.Tkhd.TrackID}
	w.sinks = append(w.sinks, sink)
	return sink, nil
}

// Finalize writes the init segment and one media fragment per track. It is
// invoked exactly once, after the scheduler's barrier, when every sink has
// been marked finished.
func (w *Writer) Finalize() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, s := range w.sinks {
		if !s.isFinished() {
			return fmt.Errorf("track %d still open", s.trackID)
		}
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", w.path, err)
	}
	defer f.Close()

	if err := w.init.Encode(f); err != nil {
		return fmt.Errorf("write init segment: %w", err)
	}

	for i, s := range w.sinks {
		frag, err := mp4.CreateFragment(uint32(i+1), s.trackID)
		if err != nil {
			return fmt.Errorf("create fragment for track %d: %w", s.trackID, err)
		}
		for _, sample := range s.drain() {
			// backward-in-time cues reach here untouched; a negative
			// duration must not wrap through the uint32 cast
			dur := sample.Duration
			if dur < 0 {
				dur = 0
			}
			frag.AddFullSample(mp4.FullSample{
				Sample: mp4.Sample{
					Dur:  uint32(dur),
					Size: uint32(sample.Size),
				},
				DecodeTime: uint64(sample.PresentationTime),
				Data:    sample.Data,
			})
		}
		if err := frag.Encode(f); err != nil {
			return fmt.Errorf("write fragment for track %d: %w", s.trackID, err)
		}
	}

	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", w.path, err)
	}
	return nil
}

// mdhdLanguage maps the author's language code to the ISO 639-2 form the
// mdhd box carries; absent or unrecognizable codes become "und".
func mdhdLanguage(code string) string {
	if code == "" {
		return "und"
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "und"
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "und"
	}
	return base.ISO3()
}

// trackSink buffers one track's samples until Finalize. The progressive
// writer has no queue bound, so it stays ready until finished.
type trackSink struct {
	trackID uint32

	mu       sync.Mutex
	samples  []*mux.Sample
	finished bool
}

func (s *trackSink) Ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return fmt.Errorf("track %d: sink already finished", s.trackID)
	}
	return nil
}

func (s *trackSink) Append(sample *mux.Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return fmt.Errorf("track %d: append after finish", s.trackID)
	}
	s.samples = append(s.samples, sample)
	return nil
}

func (s *trackSink) Finish() {
	s.mu.Lock()
	s.finished = true
	s.mu.Unlock()
}

func (s *trackSink) isFinished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

func (s *trackSink) drain() []*mux.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.samples
}
