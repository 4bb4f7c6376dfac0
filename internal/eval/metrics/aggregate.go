package metrics

import (
	"sort"
	"time"

	"github.com/auktionera/cataloger/internal/models"
)

// EvaluationResult is the scoring outcome for one historical lot.
type EvaluationResult struct {
	LotID    string
	Title    string
	Category string
	Score    models.ScoreResult
}

// ScoreBand buckets results for the distribution report.
type ScoreBand struct {
	Label string
	Min   int
	Max   int
	Count int
}

// CodeCount is one warning code with its occurrence count.
type CodeCount struct {
	Code  string
	Count int
}

// AggregateResults represents aggregated evaluation metrics
type AggregateResults struct {
	TotalRecords int

	MeanScore   float64
	MedianScore int
	MinScore    int
	MaxScore    int

	// BelowThreshold counts lots that would have triggered a correction
	// retry under the given threshold.
	Threshold      int
	BelowThreshold int

	Bands []ScoreBand

	// WarningCodes is sorted by descending count, ties by code.
	WarningCodes []CodeCount

	// Per warning source
	QualityWarnings    int
	GuidelineWarnings  int
	ComplianceWarnings int

	// Detailed results
	Results []EvaluationResult

	// Metadata
	EvaluationDate time.Time
	DatasetPath    string
	SampleSize     int
}

// defaultBands are the reporting buckets for score distribution.
func defaultBands() []ScoreBand {
	return []ScoreBand{
		{Label: "0-39", Min: 0, Max: 39},
		{Label: "40-69", Min: 40, Max: 69},
		{Label: "70-89", Min: 70, Max: 89},
		{Label: "90-100", Min: 90, Max: 100},
	}
}

// AggregateEvaluationResults aggregates scoring results over a dataset.
func AggregateEvaluationResults(results []EvaluationResult, datasetPath string, threshold int) *AggregateResults {
	agg := &AggregateResults{
		TotalRecords:   len(results),
		Threshold:      threshold,
		Bands:          defaultBands(),
		Results:        results,
		EvaluationDate: time.Now(),
		DatasetPath:    datasetPath,
		SampleSize:     len(results),
	}

	if len(results) == 0 {
		return agg
	}

	scores := make([]int, 0, len(results))
	codeCounts := make(map[string]int)
	total := 0

	agg.MinScore = 100
	for _, r := range results {
		score := r.Score.Score
		scores = append(scores, score)
		total += score

		if score < agg.MinScore {
			agg.MinScore = score
		}
		if score > agg.MaxScore {
			agg.MaxScore = score
		}
		if score < threshold {
			agg.BelowThreshold++
		}

		for i := range agg.Bands {
			if score >= agg.Bands[i].Min && score <= agg.Bands[i].Max {
				agg.Bands[i].Count++
				break
			}
		}

		for _, w := range r.Score.Warnings {
			codeCounts[w.Code]++
			switch w.Source {
			case models.SourceQuality:
				agg.QualityWarnings++
			case models.SourceFieldGuideline:
				agg.GuidelineWarnings++
			case models.SourceCompliance:
				agg.ComplianceWarnings++
			}
		}
	}

	agg.MeanScore = float64(total) / float64(len(results))

	sort.Ints(scores)
	agg.MedianScore = scores[len(scores)/2]

	for code, count := range codeCounts {
		agg.WarningCodes = append(agg.WarningCodes, CodeCount{Code: code, Count: count})
	}
	sort.Slice(agg.WarningCodes, func(i, j int) bool {
		if agg.WarningCodes[i].Count != agg.WarningCodes[j].Count {
			return agg.WarningCodes[i].Count > agg.WarningCodes[j].Count
		}
		return agg.WarningCodes[i].Code < agg.WarningCodes[j].Code
	})

	return agg
}
