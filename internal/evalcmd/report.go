package evalcmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/auktionera/cataloger/internal/eval/results"
	"github.com/spf13/cobra"
)

// NewReportCmd formats a saved evaluation file.
func NewReportCmd() *cobra.Command {
	var (
		resultsPath string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Format a saved evaluation report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeReport(resultsPath, format)
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "", "Path to a saved eval YAML file")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json or csv")
	_ = cmd.MarkFlagRequired("results")

	return cmd
}

func executeReport(resultsPath, format string) error {
	spec, err := results.LoadFromYAML(resultsPath)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	switch format {
	case "text":
		return printTextReport(spec)
	case "json":
		return printJSONReport(spec)
	case "csv":
		return printCSVReport(spec)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printTextReport(spec *results.EvalSpec) error {
	fmt.Println("========================================")
	fmt.Println("Catalog Quality Evaluation Report")
	fmt.Println("========================================")
	fmt.Printf("Dataset:   %s\n", spec.Config.DatasetPath)
	fmt.Printf("Sample:    %d\n", spec.Config.SampleSize)
	fmt.Printf("Threshold: %d\n", spec.Config.Threshold)
	fmt.Printf("Run at:    %s\n", spec.Config.Timestamp)
	fmt.Println()

	fmt.Printf("Mean score:      %.1f\n", spec.Summary.MeanScore)
	fmt.Printf("Median score:    %d\n", spec.Summary.MedianScore)
	fmt.Printf("Below threshold: %d / %d\n", spec.Summary.BelowThreshold, spec.Summary.TotalRecords)

	fmt.Println("\nDetailed Results:")
	fmt.Println("========================================")
	for i, result := range spec.Results {
		fmt.Printf("\n[%d] Lot: %s\n", i+1, result.LotID)
		fmt.Printf("  Title: %s\n", result.Title)
		fmt.Printf("  Score: %d\n", result.Score)
		if len(result.WarningCodes) > 0 {
			fmt.Printf("  Warnings: %v\n", result.WarningCodes)
		}
	}
	return nil
}

func printJSONReport(spec *results.EvalSpec) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(spec)
}

func printCSVReport(spec *results.EvalSpec) error {
	writer := csv.NewWriter(os.Stdout)
	defer writer.Flush()

	if err := writer.Write([]string{"lot_id", "title", "category", "score", "warning_count"}); err != nil {
		return err
	}
	for _, result := range spec.Results {
		row := []string{
			result.LotID,
			result.Title,
			result.Category,
			strconv.Itoa(result.Score),
			strconv.Itoa(len(result.WarningCodes)),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}
