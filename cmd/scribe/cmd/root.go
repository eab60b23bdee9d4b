package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"clinic-scribe/cmd/scribe/cmd/export"
	"clinic-scribe/cmd/scribe/cmd/seed"
	"clinic-scribe/cmd/scribe/cmd/serve"
	"clinic-scribe/cmd/scribe/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Clinic backend with diarized transcription and encounter summaries",
	Long: `Clinic backend with diarized transcription and encounter summaries.
- serve starts the HTTP API on port 8000
- seed populates the database with demo patients and appointment slots
- export writes stored transcripts or encounter summaries to csv, json, or xlsx`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(seed.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
