package app

import (
	"context"
	"log"
	"strings"

	"calories/internal/domain"
)

// MinQueryLength is the shortest trimmed query sent to the food provider.
const MinQueryLength = 2

// categorySearchTerms are the provider queries behind each suggestion category.
var categorySearchTerms = map[string]string{
	"Breakfast":  "1 bowl oatmeal, 2 eggs, 1 toast",
	"Lunch":      "1 chicken sandwich, 1 bowl rice",
	"Dinner":     "1 salmon fillet, 1 potato",
	"Snacks":     "1 apple, handful almonds",
	"Fruits":     "1 banana, 1 orange, 1 apple",
	"Vegetables": "1 cup broccoli, 1 carrot, spinach",
	"Proteins":   "100g chicken breast, 100g salmon",
	"Other":      "1 pizza slice, 1 burger",
}

var categories = []string{"All", "Breakfast", "Lunch", "Dinner", "Snacks", "Fruits", "Vegetables", "Proteins", "Other"}

// FoodService looks up candidate foods. Provider failures are logged and
// reported as an empty result.
type FoodService struct {
	searcher domain.FoodSearcher
}

// NewFoodService creates a FoodService backed by the given searcher.
func NewFoodService(searcher domain.FoodSearcher) *FoodService {
	return &FoodService{searcher: searcher}
}

// Categories lists the suggestion categories, "All" first.
func (s *FoodService) Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// Search returns foods matching query. Queries shorter than MinQueryLength
// return nothing without calling the provider.
func (s *FoodService) Search(ctx context.Context, query string) []domain.FoodRecord {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		return []domain.FoodRecord{}
	}
	return s.lookup(ctx, query, "")
}

// CategorySuggestions returns foods for a category. "All" and unknown
// categories return nothing.
func (s *FoodService) CategorySuggestions(ctx context.Context, category string) []domain.FoodRecord {
	term, ok := categorySearchTerms[category]
	if !ok {
		return []domain.FoodRecord{}
	}
	return s.lookup(ctx, term, category)
}

func (s *FoodService) lookup(ctx context.Context, query, category string) []domain.FoodRecord {
	foods, err := s.searcher.Search(ctx, query)
	if err != nil {
		log.Printf("food search %q: %v", query, err)
		return []domain.FoodRecord{}
	}

	out := make([]domain.FoodRecord, 0, len(foods))
	for _, f := range foods {
		if f.Validate() != nil {
			continue
		}
		if category != "" {
			f.Category = category
		} else if f.Category == "" {
			f.Category = "Other"
		}
		out = append(out, f)
	}
	return out
}
