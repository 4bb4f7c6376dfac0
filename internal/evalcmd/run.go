package evalcmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/auktionera/cataloger/internal/catalog"
	"github.com/auktionera/cataloger/internal/eval/dataset"
	"github.com/auktionera/cataloger/internal/eval/metrics"
	"github.com/auktionera/cataloger/internal/eval/results"
	"github.com/auktionera/cataloger/internal/generation"
	"github.com/auktionera/cataloger/internal/scoring"
	"github.com/spf13/cobra"
)

// NewRunCmd scores a historical-lot dataset with the current rule set and
// writes an aggregate report. No generation calls are made; this measures the
// rule set itself.
func NewRunCmd() *cobra.Command {
	var (
		datasetPath string
		weightsPath string
		sampleSize  int
		threshold   int
		draftCount  int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Score a historical lot dataset with the current rule set",
		Long: `Runs the rule-based scorer over every lot in a dataset (Parquet or JSONL)
and aggregates the score distribution and warning-code frequencies.

Useful for tuning the deduction table: compare reports before and after a
weights change to see how many published lots would have been flagged.`,
		Example: `  # Score the full dataset with default weights
  cataloger eval run --dataset lots.parquet

  # Score a sample with a tuned weights file
  cataloger eval run --dataset lots.jsonl --weights weights.yaml --sample 500

  # Score 200 unpublished drafts straight from the back office
  cataloger eval run --drafts 200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (datasetPath == "") == (draftCount == 0) {
				return fmt.Errorf("use exactly one of --dataset or --drafts")
			}
			return executeRun(datasetPath, weightsPath, sampleSize, threshold, draftCount)
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to the lot dataset (.parquet or .jsonl)")
	cmd.Flags().StringVar(&weightsPath, "weights", "", "Optional YAML weights file overriding the defaults")
	cmd.Flags().IntVar(&sampleSize, "sample", 0, "Maximum number of lots to score (0 = all)")
	cmd.Flags().IntVar(&threshold, "threshold", generation.DefaultCorrectionThreshold, "Correction threshold to report against")
	cmd.Flags().IntVar(&draftCount, "drafts", 0, "Score this many unpublished back-office drafts instead of a dataset file")

	return cmd
}

func executeRun(datasetPath, weightsPath string, sampleSize, threshold, draftCount int) error {
	slog.Info("Starting evaluation run", "dataset", datasetPath, "sample", sampleSize, "drafts", draftCount)

	cfg := scoring.DefaultConfig()
	if weightsPath != "" {
		loaded, err := scoring.LoadConfig(weightsPath)
		if err != nil {
			return fmt.Errorf("failed to load weights: %w", err)
		}
		cfg = loaded
		slog.Info("Loaded weights file", "path", weightsPath)
	}
	scorer := scoring.New(cfg)

	var evalResults []metrics.EvaluationResult
	source := datasetPath

	if draftCount > 0 {
		source = "backoffice:drafts"
		baseURL := os.Getenv("CATALOG_API_URL")
		if baseURL == "" {
			return fmt.Errorf("CATALOG_API_URL is not set")
		}
		client := catalog.NewClient(baseURL, os.Getenv("CATALOG_API_KEY"))
		records, err := client.FetchRecords(draftCount)
		if err != nil {
			return fmt.Errorf("failed to fetch drafts: %w", err)
		}
		slog.Info("Drafts fetched", "lots", len(records))

		for _, rec := range records {
			evalResults = append(evalResults, metrics.EvaluationResult{
				Title:    rec.Title,
				Category: rec.Category,
				Score:    scorer.Score(rec),
			})
		}
	} else {
		loader := dataset.NewLoader(datasetPath)
		records, err := loader.LoadSample(sampleSize)
		if err != nil {
			return fmt.Errorf("failed to load dataset: %w", err)
		}
		slog.Info("Dataset loaded", "lots", len(records))

		evalResults = make([]metrics.EvaluationResult, 0, len(records))
		for _, lot := range records {
			evalResults = append(evalResults, metrics.EvaluationResult{
				LotID:    lot.LotID,
				Title:    lot.Title,
				Category: lot.Category,
				Score:    scorer.Score(lot.ToCatalogRecord()),
			})
		}
	}

	agg := metrics.AggregateEvaluationResults(evalResults, source, threshold)

	printSummary(agg)

	path, err := results.SaveToYAML(agg)
	if err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	fmt.Printf("\nResults saved to: %s\n", path)
	fmt.Printf("\nGenerate a detailed report with:\n")
	fmt.Printf("  cataloger eval report --results %s\n", path)

	return nil
}

func printSummary(agg *metrics.AggregateResults) {
	fmt.Println("========================================")
	fmt.Println("Catalog Quality Evaluation Summary")
	fmt.Println("========================================")
	fmt.Printf("Lots scored:      %d\n", agg.TotalRecords)
	fmt.Printf("Mean score:       %.1f\n", agg.MeanScore)
	fmt.Printf("Median score:     %d\n", agg.MedianScore)
	fmt.Printf("Min/Max:          %d / %d\n", agg.MinScore, agg.MaxScore)
	fmt.Printf("Below threshold:  %d (threshold %d)\n", agg.BelowThreshold, agg.Threshold)

	fmt.Println("\nScore distribution:")
	for _, band := range agg.Bands {
		fmt.Printf("  %-8s %d\n", band.Label, band.Count)
	}

	fmt.Println("\nMost frequent warnings:")
	limit := 10
	if len(agg.WarningCodes) < limit {
		limit = len(agg.WarningCodes)
	}
	for _, cc := range agg.WarningCodes[:limit] {
		fmt.Printf("  %-32s %d\n", cc.Code, cc.Count)
	}

	fmt.Printf("\nWarnings by source: quality=%d guideline=%d compliance=%d\n",
		agg.QualityWarnings, agg.GuidelineWarnings, agg.ComplianceWarnings)
}
