package dataset

import "github.com/auktionera/cataloger/internal/models"

// LotRecord is one historical lot from an exported auction dataset, used to
// evaluate the rule set against records catalogers actually published.
type LotRecord struct {
	LotID       string `json:"lot_id" parquet:"lot_id"`
	Category    string `json:"category" parquet:"category"`
	Title       string `json:"title" parquet:"title"`
	Description string `json:"description" parquet:"description"`
	Condition   string `json:"condition" parquet:"condition"`
	Artist      string `json:"artist" parquet:"artist"`
	Keywords    string `json:"keywords" parquet:"keywords"`

	EstimateValue float64 `json:"estimate" parquet:"estimate"`
	ReserveValue  float64 `json:"reserve" parquet:"reserve"`
	NoRemarks     bool    `json:"no_remarks" parquet:"no_remarks"`

	// Outcome data, kept for future correlation reports.
	SoldPrice float64 `json:"sold_price" parquet:"sold_price"`
	Unsold    bool    `json:"unsold" parquet:"unsold"`
}

// ToCatalogRecord converts a dataset row to an engine record snapshot.
func (r *LotRecord) ToCatalogRecord() models.CatalogRecord {
	return models.CatalogRecord{
		Category:      r.Category,
		Title:         r.Title,
		Description:   r.Description,
		Condition:     r.Condition,
		Artist:        r.Artist,
		Keywords:      r.Keywords,
		EstimateValue: r.EstimateValue,
		ReserveValue:  r.ReserveValue,
		NoRemarksFlag: r.NoRemarks,
	}
}
