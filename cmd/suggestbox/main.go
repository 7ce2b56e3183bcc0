package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"suggestbox/cmd/commands"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "suggestbox",
	Short: "Terminal autocomplete combobox backed by a suggestion endpoint",
	Long: `suggestbox is a terminal combobox: a text input paired with a list of
suggestions fetched from a /v1/autocomplete endpoint as you type.

Run 'suggestbox serve --corpus words.yaml' to start a local endpoint and
'suggestbox' (or 'suggestbox run') to open the combobox against it.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of suggestbox",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("suggestbox version %s\n", version)
	},
}

func init() {
	run := commands.NewRunCommand()
	rootCmd.RunE = run.RunE
	rootCmd.Flags().AddFlagSet(run.Flags())

	rootCmd.AddCommand(run)
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
