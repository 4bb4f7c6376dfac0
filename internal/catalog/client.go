package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/auktionera/cataloger/internal/models"
)

// Client fetches lot records from the auction back office, the source of
// every CatalogRecord snapshot the engine validates.
type Client struct {
	BaseURL    string
	APIKey     string
	httpClient *http.Client
}

// NewClient creates a new back-office client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// lotPayload is the back-office wire format for one lot.
type lotPayload struct {
	ID            string  `json:"id"`
	Category      string  `json:"category"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Condition     string  `json:"condition"`
	Artist        string  `json:"artist"`
	Keywords      string  `json:"keywords"`
	EstimateValue float64 `json:"estimate"`
	ReserveValue  float64 `json:"reserve"`
	NoRemarks     bool    `json:"no_remarks"`
}

func (p lotPayload) toRecord() models.CatalogRecord {
	return models.CatalogRecord{
		Category:      p.Category,
		Title:         p.Title,
		Description:   p.Description,
		Condition:     p.Condition,
		Artist:        p.Artist,
		Keywords:      p.Keywords,
		EstimateValue: p.EstimateValue,
		ReserveValue:  p.ReserveValue,
		NoRemarksFlag: p.NoRemarks,
	}
}

// FetchRecord fetches one lot record by ID.
func (c *Client) FetchRecord(lotID string) (models.CatalogRecord, error) {
	fetchURL := fmt.Sprintf("%s/api/v1/lots/%s", c.BaseURL, url.PathEscape(lotID))

	req, err := http.NewRequest("GET", fetchURL, nil)
	if err != nil {
		return models.CatalogRecord{}, fmt.Errorf("failed to create request: %w", err)
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.CatalogRecord{}, fmt.Errorf("failed to fetch lot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return models.CatalogRecord{}, fmt.Errorf("back office returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload lotPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.CatalogRecord{}, fmt.Errorf("failed to decode lot: %w", err)
	}

	return payload.toRecord(), nil
}

// FetchRecords fetches up to limit unpublished lot records.
func (c *Client) FetchRecords(limit int) ([]models.CatalogRecord, error) {
	searchURL := fmt.Sprintf("%s/api/v1/lots?status=draft&limit=%d", c.BaseURL, limit)

	req, err := http.NewRequest("GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lots: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("back office returned status %d: %s", resp.StatusCode, string(body))
	}

	var payloads struct {
		Lots []lotPayload `json:"lots"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payloads); err != nil {
		return nil, fmt.Errorf("failed to decode lot list: %w", err)
	}

	records := make([]models.CatalogRecord, 0, len(payloads.Lots))
	for _, p := range payloads.Lots {
		records = append(records, p.toRecord())
	}
	return records, nil
}
