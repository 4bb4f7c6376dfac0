package results

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/auktionera/cataloger/internal/eval/metrics"
	"gopkg.in/yaml.v3"
)

// EvalConfig represents the configuration section of the eval YAML
type EvalConfig struct {
	DatasetPath string `yaml:"datasetpath"`
	SampleSize  int    `yaml:"samplesize"`
	Threshold   int    `yaml:"threshold"`
	Timestamp   string `yaml:"timestamp"`
}

// EvalSummary represents the aggregate section of the eval YAML
type EvalSummary struct {
	TotalRecords   int            `yaml:"totalrecords"`
	MeanScore      float64        `yaml:"meanscore"`
	MedianScore    int            `yaml:"medianscore"`
	MinScore       int            `yaml:"minscore"`
	MaxScore       int            `yaml:"maxscore"`
	BelowThreshold int            `yaml:"belowthreshold"`
	Bands          map[string]int `yaml:"bands"`
	WarningCodes   map[string]int `yaml:"warningcodes"`
}

// EvalResult represents a single evaluation result
type EvalResult struct {
	LotID        string   `yaml:"lotid"`
	Title        string   `yaml:"title"`
	Category     string   `yaml:"category,omitempty"`
	Score        int      `yaml:"score"`
	WarningCodes []string `yaml:"warningcodes,omitempty"`
}

// EvalSpec represents the complete evaluation specification
type EvalSpec struct {
	Config  EvalConfig   `yaml:"config"`
	Summary EvalSummary  `yaml:"summary"`
	Results []EvalResult `yaml:"results"`
}

// SaveToYAML saves evaluation results to a YAML file in evals/ directory
func SaveToYAML(agg *metrics.AggregateResults) (string, error) {
	if err := os.MkdirAll("evals", 0755); err != nil {
		return "", fmt.Errorf("failed to create evals directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")

	spec := EvalSpec{
		Config: EvalConfig{
			DatasetPath: agg.DatasetPath,
			SampleSize:  agg.SampleSize,
			Threshold:   agg.Threshold,
			Timestamp:   timestamp,
		},
		Summary: EvalSummary{
			TotalRecords:   agg.TotalRecords,
			MeanScore:      agg.MeanScore,
			MedianScore:    agg.MedianScore,
			MinScore:       agg.MinScore,
			MaxScore:       agg.MaxScore,
			BelowThreshold: agg.BelowThreshold,
			Bands:          make(map[string]int, len(agg.Bands)),
			WarningCodes:   make(map[string]int, len(agg.WarningCodes)),
		},
		Results: make([]EvalResult, 0, len(agg.Results)),
	}

	for _, band := range agg.Bands {
		spec.Summary.Bands[band.Label] = band.Count
	}
	for _, cc := range agg.WarningCodes {
		spec.Summary.WarningCodes[cc.Code] = cc.Count
	}

	for _, r := range agg.Results {
		evalResult := EvalResult{
			LotID:    r.LotID,
			Title:    r.Title,
			Category: r.Category,
			Score:    r.Score.Score,
		}
		for _, w := range r.Score.Warnings {
			evalResult.WarningCodes = append(evalResult.WarningCodes, w.Code)
		}
		spec.Results = append(spec.Results, evalResult)
	}

	filename := fmt.Sprintf("evals/scoring-%s.yaml", timestamp)

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	return absPath, nil
}

// LoadFromYAML reads a previously saved evaluation file.
func LoadFromYAML(path string) (*EvalSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read eval file: %w", err)
	}

	var spec EvalSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse eval file: %w", err)
	}
	return &spec, nil
}
