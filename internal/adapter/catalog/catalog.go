// Package catalog is a built-in food database used when no nutrition API is
// configured. Values are per 100 g.
package catalog

import (
	"context"
	"strings"
	"unicode"

	"calories/internal/domain"
)

var defaultFoods = []domain.FoodRecord{
	{Name: "Oatmeal", CaloriesPer100g: 71, ProteinPer100g: 2.5, CarbsPer100g: 12, FatPer100g: 1.5, Category: "Breakfast"},
	{Name: "Scrambled Eggs", CaloriesPer100g: 149, ProteinPer100g: 10, CarbsPer100g: 1.6, FatPer100g: 11, Category: "Breakfast"},
	{Name: "Whole Wheat Toast", CaloriesPer100g: 247, ProteinPer100g: 13, CarbsPer100g: 41, FatPer100g: 3.4, Category: "Breakfast"},
	{Name: "Grilled Chicken Breast", CaloriesPer100g: 165, ProteinPer100g: 31, CarbsPer100g: 0, FatPer100g: 3.6, Category: "Proteins"},
	{Name: "Salmon Fillet", CaloriesPer100g: 208, ProteinPer100g: 20, CarbsPer100g: 0, FatPer100g: 13, Category: "Proteins"},
	{Name: "Chicken Sandwich", CaloriesPer100g: 250, ProteinPer100g: 14, CarbsPer100g: 26, FatPer100g: 9, Category: "Lunch"},
	{Name: "Brown Rice", CaloriesPer100g: 123, ProteinPer100g: 2.7, CarbsPer100g: 25.6, FatPer100g: 1, Category: "Lunch"},
	{Name: "Baked Potato", CaloriesPer100g: 93, ProteinPer100g: 2.5, CarbsPer100g: 21, FatPer100g: 0.1, Category: "Dinner"},
	{Name: "Almonds", CaloriesPer100g: 579, ProteinPer100g: 21, CarbsPer100g: 22, FatPer100g: 50, Category: "Snacks"},
	{Name: "Greek Yogurt", CaloriesPer100g: 59, ProteinPer100g: 10, CarbsPer100g: 3.6, FatPer100g: 0.4, Category: "Snacks"},
	{Name: "Apple", CaloriesPer100g: 52, ProteinPer100g: 0.3, CarbsPer100g: 14, FatPer100g: 0.2, Category: "Fruits"},
	{Name: "Banana", CaloriesPer100g: 89, ProteinPer100g: 1.1, CarbsPer100g: 23, FatPer100g: 0.3, Category: "Fruits"},
	{Name: "Orange", CaloriesPer100g: 47, ProteinPer100g: 0.9, CarbsPer100g: 12, FatPer100g: 0.1, Category: "Fruits"},
	{Name: "Broccoli", CaloriesPer100g: 34, ProteinPer100g: 2.8, CarbsPer100g: 7, FatPer100g: 0.4, Category: "Vegetables"},
	{Name: "Carrot", CaloriesPer100g: 41, ProteinPer100g: 0.9, CarbsPer100g: 10, FatPer100g: 0.2, Category: "Vegetables"},
	{Name: "Spinach", CaloriesPer100g: 23, ProteinPer100g: 2.9, CarbsPer100g: 3.6, FatPer100g: 0.4, Category: "Vegetables"},
	{Name: "Orange Juice", CaloriesPer100g: 45, ProteinPer100g: 0.7, CarbsPer100g: 10.4, FatPer100g: 0.2, Category: "Beverages"},
	{Name: "Milk (2%)", CaloriesPer100g: 50, ProteinPer100g: 3.3, CarbsPer100g: 4.8, FatPer100g: 2, Category: "Beverages"},
	{Name: "Pizza Slice", CaloriesPer100g: 266, ProteinPer100g: 11, CarbsPer100g: 33, FatPer100g: 10, Category: "Other"},
	{Name: "Burger", CaloriesPer100g: 295, ProteinPer100g: 17, CarbsPer100g: 24, FatPer100g: 14, Category: "Other"},
}

// Catalog searches a fixed list of foods.
type Catalog struct {
	foods []domain.FoodRecord
}

var _ domain.FoodSearcher = (*Catalog)(nil)

// New returns a Catalog over foods, or over the built-in list when foods is empty.
func New(foods ...domain.FoodRecord) *Catalog {
	if len(foods) == 0 {
		foods = defaultFoods
	}
	c := &Catalog{foods: make([]domain.FoodRecord, len(foods))}
	copy(c.foods, foods)
	return c
}

// Search matches query case-insensitively against names and categories. A
// food also matches when its name contains one of the words of a
// multi-item query such as "1 banana, 1 orange".
func (c *Catalog) Search(_ context.Context, query string) ([]domain.FoodRecord, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	words := queryWords(q)

	out := make([]domain.FoodRecord, 0)
	for _, f := range c.foods {
		name := strings.ToLower(f.Name)
		if q != "" && (strings.Contains(name, q) || strings.Contains(strings.ToLower(f.Category), q)) {
			out = append(out, f)
			continue
		}
		for _, w := range words {
			if strings.Contains(name, w) {
				out = append(out, f)
				break
			}
		}
	}
	return out, nil
}

// queryWords returns the alphabetic words of q with at least three letters.
// Quantities such as "100g" are dropped.
func queryWords(q string) []string {
	fields := strings.FieldsFunc(q, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';'
	})
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < 3 || strings.IndexFunc(f, func(r rune) bool { return !unicode.IsLetter(r) }) >= 0 {
			continue
		}
		words = append(words, strings.TrimSuffix(f, "s"))
	}
	return words
}
