package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/offer-scorer/internal/observability"
	"github.com/jonathan/offer-scorer/internal/schemas"
	"github.com/jonathan/offer-scorer/internal/types"
	"github.com/spf13/cobra"
)

var leversCmd = &cobra.Command{
	Use:   "levers",
	Short: "Print the ranked improvement levers of a saved result",
	RunE:  runLevers,
}

var leversInput string

func init() {
	leversCmd.Flags().StringVarP(&leversInput, "in", "i", "", "Path to a ScoringResult JSON file")
	_ = leversCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(leversCmd)
}

func runLevers(cmd *cobra.Command, _ []string) error {
	if leversInput == "" {
		return fmt.Errorf("--in is required")
	}

	data, err := os.ReadFile(leversInput)
	if err != nil {
		return fmt.Errorf("failed to read result file: %w", err)
	}
	if err := schemas.ValidateResultFile(leversInput); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: result does not match schema: %v\n", err)
	}

	var result types.ScoringResult
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("failed to parse result file: %w", err)
	}
	if len(result.LeverDeltas) == 0 {
		return fmt.Errorf("result has no lever deltas")
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintLevers(result.LeverDeltas)
	if top := result.TopLever(); top != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Start with %s: +%.1f points for about %.1f hours\n", top.Lever, top.Delta, top.EstimatedHours)
	}
	return nil
}
