package cli

import (
	"github.com/janx2/subwriter/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "subwriter",
	Short: "Mux timed-text subtitle tracks into MP4 movies",
	Long: `Subwriter compiles plain-text cue documents into 3GPP timed-text
(tx3g) subtitle tracks and muxes them into an MP4 container alongside
the movie's existing tracks.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Fallback language code for documents without a language header")
}
