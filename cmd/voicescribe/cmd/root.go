package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"voicescribe/cmd/voicescribe/cmd/serve"
	"voicescribe/cmd/voicescribe/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "voicescribe",
	Short: "An audio transcription service backed by AssemblyAI",
	Long: `An audio transcription service backed by AssemblyAI.
- Accepts audio uploads over HTTP and returns the transcribed text
- Saves transcriptions to Postgres, with a local JSON fallback store
- Serves recent transcription history`,
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
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
