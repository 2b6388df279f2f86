package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/offer-scorer/internal/analysis"
	"github.com/jonathan/offer-scorer/internal/config"
	"github.com/jonathan/offer-scorer/internal/observability"
	"github.com/jonathan/offer-scorer/internal/schemas"
	"github.com/jonathan/offer-scorer/internal/types"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score an HTML or PDF offer document",
	Long: `Parse an HTML or PDF document, score it and write the ScoringResult JSON.
The JSON goes to --out or stdout; the human-readable summary goes to stderr.`,
	RunE: runAnalyze,
}

var (
	analyzeType    string
	analyzeInput   string
	analyzeOutput  string
	analyzeConfig  string
	analyzeCache   string
	analyzeMain    bool
	analyzeVerbose bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeType, "type", "t", "", "Content type: html or pdf (inferred from the file extension when omitted)")
	analyzeCmd.Flags().StringVarP(&analyzeInput, "in", "i", "", "Path to the document to score")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "Path to output JSON file (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig, "config", "", "Path to JSON or YAML config file")
	analyzeCmd.Flags().StringVar(&analyzeCache, "cache", "", "Path to SQLite result cache")
	analyzeCmd.Flags().BoolVar(&analyzeMain, "main-content", false, "Score only the main article of an HTML page")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print parsed content and debug logging")

	_ = analyzeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if analyzeInput == "" {
		return fmt.Errorf("--in is required")
	}
	contentType := analyzeType
	if contentType == "" {
		contentType = inferType(analyzeInput)
	}

	data, err := os.ReadFile(analyzeInput)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	cfg, err := resolveConfig(analyzeConfig, config.Config{
		CachePath:       analyzeCache,
		MainContentOnly: analyzeMain,
		Verbose:         analyzeVerbose,
	})
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	cache, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	var hooks []analysis.Option
	if cfg.Verbose {
		hooks = append(hooks, analysis.WithParsedHook(func(_ string, content *types.ParsedContent) {
			printer.PrintParsedContent(content)
		}))
	}
	analyzer := newAnalyzer(cfg, cache, hooks...)

	var content any = data
	if contentType == analysis.TypeHTML {
		content = string(data)
	}
	resp := analyzer.AnalyzeContent(ctx, analysis.Request{Type: contentType, Content: content})

	if resp.Result != nil {
		if err := writeResult(cmd, resp.Result); err != nil {
			return err
		}
		if err := schemas.ValidateScoringResult(resp.Result); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: result does not match schema: %v\n", err)
		}
		printer.PrintScoringResult(resp.Result)
	}

	if !resp.Success {
		return fmt.Errorf("analysis failed (%s): %s", resp.Code, resp.Error)
	}
	return nil
}

// inferType maps a file extension to a content type, defaulting to html
func inferType(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return analysis.TypePDF
	}
	return analysis.TypeHTML
}

func writeResult(cmd *cobra.Command, result *types.ScoringResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	data = append(data, '\n')

	if analyzeOutput == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if dir := filepath.Dir(analyzeOutput); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(analyzeOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote result to %s\n", analyzeOutput)
	return nil
}
