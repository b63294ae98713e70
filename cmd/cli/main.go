package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host        string
	matchID     string
	matchNumber int
)

var rootCmd = &cobra.Command{
	Use:   "touchline-cli",
	Short: "A CLI to interact with the touchline server",
	Long: `A command-line interface for making requests to the various endpoints
of the touchline application.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&matchID, "match", "", "The match id to operate on")
	rootCmd.PersistentFlags().IntVar(&matchNumber, "number", 1, "The game number within the match")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
