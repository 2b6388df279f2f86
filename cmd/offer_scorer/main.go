// Package main provides the entry point for the offer scoring CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "offer_scorer",
	Short: "Deterministic offer content scorer",
	Long:  "Offer Scorer parses HTML or PDF marketing content, scores it on six offer dimensions and ranks the improvement levers by expected value per hour.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
