package cli

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	ffmpegbin "github.com/janx2/subwriter/internal/ffmpeg"
	"github.com/janx2/subwriter/internal/media"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [media_file]",
	Short: "List the tracks of a media container",
	Long: `List the tracks of a media container, with codec and language details.

Useful for checking which subtitle tracks a movie already carries before
muxing new ones in.

Examples:
  subwriter inspect movie.mp4`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	if _, err := ffmpegbin.Ensure(); err != nil {
		return err
	}

	info, err := media.Probe(path)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Type", "Codec", "Language", "Title"})
	for _, s := range info.Streams {
		t.AppendRow(table.Row{
			s.Index,
			s.CodecType,
			s.CodecName,
			s.Tags.Language,
			s.Tags.Title,
		})
	}
	t.Render()

	fmt.Printf("Format: %s", info.Format.FormatName)
	if info.Format.Duration != "" {
		fmt.Printf("  Duration: %ss", info.Format.Duration)
	}
	fmt.Println()

	return nil
}
