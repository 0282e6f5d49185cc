// Package ffmpeg locates the ffmpeg and ffprobe binaries the remux and
// probe steps shell out to.
package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
)

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var (
	ensureOnce sync.Once
	ensureErr  error
	ensurePath BinaryPaths

	ffmpegOverride  string
	ffprobeOverride string
)

// SetOverrides pins explicit binary paths ahead of resolution; empty values
// keep env and PATH discovery. Must be called before the first Ensure.
func SetOverrides(ffmpegPath, ffprobePath string) {
	ffmpegOverride = ffmpegPath
	ffprobeOverride = ffprobePath
}

// Ensure resolves both binaries once per process: explicit overrides first,
// then env, then a PATH lookup.
func Ensure() (BinaryPaths, error) {
	ensureOnce.Do(func() {
		ensurePath, ensureErr = ensure()
	})
	return ensurePath, ensureErr
}

func FFmpegPath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

func FFprobePath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

func ensure() (BinaryPaths, error) {
	paths := BinaryPaths{
		FFmpeg:  ffmpegOverride,
		FFprobe: ffprobeOverride,
	}

	if paths.FFmpeg == "" {
		paths.FFmpeg = os.Getenv("SUBWRITER_FFMPEG_PATH")
	}
	if paths.FFprobe == "" {
		paths.FFprobe = os.Getenv("SUBWRITER_FFPROBE_PATH")
	}

	if paths.FFmpeg == "" {
		found, err := exec.LookPath("ffmpeg")
		if err != nil {
			return BinaryPaths{}, fmt.Errorf(
				"ffmpeg not found: install it or set SUBWRITER_FFMPEG_PATH",
			)
		}
		paths.FFmpeg = found
	}
	if paths.FFprobe == "" {
		found, err := exec.LookPath("ffprobe")
		if err != nil {
			return BinaryPaths{}, fmt.Errorf(
				"ffprobe not found: install it or set SUBWRITER_FFPROBE_PATH",
			)
		}
		paths.FFprobe = found
	}

	return paths, nil
}
