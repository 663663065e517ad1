// Package calorieninjas implements domain.FoodSearcher on top of the
// CalorieNinjas natural-language nutrition API.
package calorieninjas

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"calories/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	// DefaultBaseURL is the public API endpoint.
	DefaultBaseURL     = "https://api.calorieninjas.com"
	nutritionPath      = "/v1/nutrition"
	defaultHTTPTimeout = 10 * time.Second
)

var hundred = decimal.NewFromInt(100)

// Client queries the CalorieNinjas nutrition endpoint.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

var _ domain.FoodSearcher = (*Client)(nil)

// New creates a Client. An empty baseURL selects DefaultBaseURL.
func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultHTTPTimeout},
	}
}

type nutritionResponse struct {
	Items []nutritionItem `json:"items"`
}

// nutritionItem values are for ServingSizeG grams.
type nutritionItem struct {
	Name                string  `json:"name"`
	Calories            float64 `json:"calories"`
	ServingSizeG        float64 `json:"serving_size_g"`
	ProteinG            float64 `json:"protein_g"`
	CarbohydratesTotalG float64 `json:"carbohydrates_total_g"`
	FatTotalG           float64 `json:"fat_total_g"`
}

// Search looks query up and returns the items normalised to 100 g. Items
// without a positive serving size cannot be normalised and are skipped.
func (c *Client) Search(ctx context.Context, query string) ([]domain.FoodRecord, error) {
	u := c.baseURL + nutritionPath + "?query=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calorieninjas status %d", resp.StatusCode)
	}

	var out nutritionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode nutrition response: %w", err)
	}

	foods := make([]domain.FoodRecord, 0, len(out.Items))
	for _, it := range out.Items {
		if it.ServingSizeG <= 0 {
			continue
		}
		factor := hundred.Div(decimal.NewFromFloat(it.ServingSizeG))
		foods = append(foods, domain.FoodRecord{
			Name:            it.Name,
			CaloriesPer100g: per100g(it.Calories, factor),
			ProteinPer100g:  per100g(it.ProteinG, factor),
			CarbsPer100g:    per100g(it.CarbohydratesTotalG, factor),
			FatPer100g:      per100g(it.FatTotalG, factor),
		})
	}
	return foods, nil
}

func per100g(v float64, factor decimal.Decimal) float64 {
	return decimal.NewFromFloat(v).Mul(factor).Round(2).InexactFloat64()
}
