package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/janx2/subwriter/internal/config"
	"github.com/janx2/subwriter/internal/container"
	"github.com/janx2/subwriter/internal/cue"
	ffmpegbin "github.com/janx2/subwriter/internal/ffmpeg"
	"github.com/janx2/subwriter/internal/media"
	"github.com/janx2/subwriter/internal/mux"
	"github.com/janx2/subwriter/internal/tx3g"
)

var muxCmd = &cobra.Command{
	Use:   "mux [movie_file] [cue_file...]",
	Short: "Compile cue documents and mux them into a movie",
	Long: `Compile one or more plain-text cue documents into tx3g subtitle tracks
and mux them into the movie.

Each cue document becomes one subtitle track. The document's header lines
(language, extended language, characteristics) set the track's language and
accessibility metadata; its timestamped blocks become the timed samples.

Examples:
  subwriter mux movie.mp4 english.txt
  subwriter mux movie.mp4 english.txt french.txt -o movie-subs.mp4
  subwriter mux movie.mp4 sdh.txt --subtitle-only -o track.mp4`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMux,
}

func init() {
	rootCmd.AddCommand(muxCmd)

	muxCmd.Flags().
		String("config", "", "Path to a subwriter.toml settings file")
	muxCmd.Flags().
		Bool("subtitle-only", false, "Write only the compiled subtitle track, skip the movie remux")
	muxCmd.Flags().
		Bool("keep-track", false, "Keep the intermediate subtitle track file next to the output")
}

func runMux(cmd *cobra.Command, args []string) error {
	moviePath := args[0]
	cuePaths := args[1:]
	ctx := context.Background()

	if _, err := os.Stat(moviePath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", moviePath)
	}

	configPath, _ := cmd.Flags().GetString("config")
	subtitleOnly, _ := cmd.Flags().GetBool("subtitle-only")
	keepTrack, _ := cmd.Flags().GetBool("keep-track")
	outputPath, _ := cmd.Flags().GetString("output")
	fallbackLang, _ := cmd.Flags().GetString("language")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if fallbackLang == "" {
		fallbackLang = cfg.Language
	}
	ffmpegbin.SetOverrides(cfg.FFmpegPath, cfg.FFprobePath)

	if outputPath == "" {
		outputPath = defaultOutputPath(moviePath, cfg.OutputSuffix)
	}

	trackPath := outputPath
	if !subtitleOnly {
		if keepTrack {
			ext := filepath.Ext(outputPath)
			trackPath = strings.TrimSuffix(outputPath, ext) + "-track.mp4"
		} else {
			tempDir, err := os.MkdirTemp("", "subwriter-*")
			if err != nil {
				return fmt.Errorf("failed to create temp directory: %w", err)
			}
			defer os.RemoveAll(tempDir)
			trackPath = filepath.Join(tempDir, "subtitles.mp4")
		}
	}

	logger.Infow("Compiling subtitle tracks",
		"movie", moviePath,
		"documents", len(cuePaths),
		"output", outputPath,
	)

	writer := container.NewWriter(trackPath)

	var pipelines []mux.Pipeline
	for _, path := range cuePaths {
		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read cue document: %w", err)
		}

		doc := cue.Parse(string(text))
		samples, err := tx3g.EncodeAll(doc)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		lang := doc.Header.Language
		if lang == "" {
			lang = fallbackLang
		}

		sink, err := writer.OpenSink(container.TrackOptions{
			Language:            lang,
			ExtendedLanguageTag: doc.Header.ExtendedLanguageTag,
			Characteristics:     tx3g.TrackCharacteristics(doc.Header),
			SampleDescription:   tx3g.SampleDescription(),
			Timescale:           uint32(tx3g.Timescale),
		})
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		logger.Debugw("Opened subtitle track",
			"document", path,
			"language", lang,
			"cues", len(doc.Cues),
			"sdh", doc.Header.SDH,
		)

		pipelines = append(pipelines, mux.Pipeline{
			Name:   filepath.Base(path),
			Source: mux.NewCueSource(samples),
			Sink:   sink,
		})
	}

	scheduler := mux.NewScheduler(logger, pipelines...)
	if err := scheduler.Run(ctx, writer.Finalize); err != nil {
		return fmt.Errorf("mux failed: %w", err)
	}

	if !subtitleOnly {
		if _, err := ffmpegbin.Ensure(); err != nil {
			return err
		}

		logger.Infow("Attaching subtitle track",
			"movie", moviePath,
			"track", trackPath,
		)

		if err := media.Attach(ctx, moviePath, trackPath, outputPath); err != nil {
			return err
		}
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitles muxed successfully: %s\n", absOutput)
	fmt.Printf("  Tracks: %d\n", len(pipelines))

	return nil
}

// defaultOutputPath derives the output file name from the movie name and
// the configured suffix, keeping the movie's extension.
func defaultOutputPath(moviePath, suffix string) string {
	ext := filepath.Ext(moviePath)
	return strings.TrimSuffix(moviePath, ext) + suffix + ext
}
