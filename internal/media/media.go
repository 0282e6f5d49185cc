// Package media wraps the ffmpeg tooling used around the core muxer: track
// enumeration of the target movie and the final copy remux that attaches
// the compiled subtitle track.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/janx2/subwriter/internal/ffmpeg"
)

// Stream is one track reported by ffprobe.
type Stream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Tags      struct {
		Language string `json:"language"`
		Title    string `json:"title"`
	} `json:"tags"`
}

// Info is the probe result for one media container.
type Info struct {
	Format struct {
		Filename   string `json:"filename"`
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
	} `json:"format"`
	Streams []Stream `json:"streams"`
}

// Probe enumerates the tracks of a media file with the resolved ffprobe
// binary.
func Probe(path string) (*Info, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	var info Info
	if err := json.Unmarshal(out.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	return &info, nil
}

// Attach remuxes the movie and the compiled subtitle track file into one
// output container, copying every stream from both inputs.
func Attach(ctx context.Context, moviePath, trackPath, outputPath string) error {
	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	movie := ffmpeg.Input(moviePath)
	track := ffmpeg.Input(trackPath)

	err = ffmpeg.Output(
		[]*ffmpeg.Stream{movie, track},
		outputPath,
		ffmpeg.KwArgs{
			"c":   "copy",
			"map": []string{"0", "1"},
		},
	).OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg remux failed: %w", err)
	}
	return nil
}
