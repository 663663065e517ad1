package domain

import (
	"context"
	"errors"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidPortion is returned when a portion is not a finite number of grams > 0.
	ErrInvalidPortion = errors.New("portion must be a finite number of grams greater than 0")
	// ErrInvalidFood is returned when a food record carries negative or non-finite nutrients.
	ErrInvalidFood = errors.New("food nutrients must be finite and >= 0")
)

var hundred = decimal.NewFromInt(100)

// FoodRecord holds nutrition facts normalised to a 100 g reference quantity.
type FoodRecord struct {
	Name            string  `json:"name"`
	CaloriesPer100g float64 `json:"caloriesPer100g"`
	ProteinPer100g  float64 `json:"proteinPer100g"`
	CarbsPer100g    float64 `json:"carbsPer100g"`
	FatPer100g      float64 `json:"fatPer100g"`
	Category        string  `json:"category"`
}

// Validate reports ErrInvalidFood if any nutrient is negative, NaN or infinite.
func (f FoodRecord) Validate() error {
	for _, v := range []float64{f.CaloriesPer100g, f.ProteinPer100g, f.CarbsPer100g, f.FatPer100g} {
		if !finite(v) || v < 0 {
			return ErrInvalidFood
		}
	}
	return nil
}

// ScaledFood is a FoodRecord recomputed for a concrete portion.
type ScaledFood struct {
	Name         string  `json:"name"`
	Calories     int     `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fat          float64 `json:"fat"`
	ServingLabel string  `json:"servingLabel"`
	Category     string  `json:"category"`
}

// Validate reports ErrInvalidMeal for a scaled food that cannot be logged.
func (s ScaledFood) Validate() error {
	if s.Name == "" || s.Calories < 0 {
		return ErrInvalidMeal
	}
	for _, v := range []float64{s.Protein, s.Carbs, s.Fat} {
		if !finite(v) || v < 0 {
			return ErrInvalidMeal
		}
	}
	return nil
}

// Scale computes the nutrients of portionGrams of food. Calories are rounded
// half away from zero to an integer and macros to one decimal place.
func Scale(food FoodRecord, portionGrams float64) (ScaledFood, error) {
	if !finite(portionGrams) || portionGrams <= 0 {
		return ScaledFood{}, ErrInvalidPortion
	}
	if err := food.Validate(); err != nil {
		return ScaledFood{}, err
	}

	ratio := decimal.NewFromFloat(portionGrams).Div(hundred)
	calories := scaleNutrient(food.CaloriesPer100g, ratio, 0)
	if calories.GreaterThan(maxCalories) {
		return ScaledFood{}, ErrInvalidPortion
	}
	return ScaledFood{
		Name:         food.Name,
		Calories:     int(calories.IntPart()),
		Protein:      scaleNutrient(food.ProteinPer100g, ratio, 1).InexactFloat64(),
		Carbs:        scaleNutrient(food.CarbsPer100g, ratio, 1).InexactFloat64(),
		Fat:          scaleNutrient(food.FatPer100g, ratio, 1).InexactFloat64(),
		ServingLabel: ServingLabel(portionGrams),
		Category:     food.Category,
	}, nil
}

// ServingLabel renders a gram portion the way it is shown to users, e.g. "150g".
func ServingLabel(portionGrams float64) string {
	return strconv.FormatFloat(portionGrams, 'f', -1, 64) + "g"
}

func scaleNutrient(per100g float64, ratio decimal.Decimal, places int32) decimal.Decimal {
	return decimal.NewFromFloat(per100g).Mul(ratio).Round(places)
}

// maxCalories bounds a single scaled portion so it fits an int on every platform.
var maxCalories = decimal.NewFromInt(math.MaxInt32)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FoodSearcher is the port for nutrition database lookups.
type FoodSearcher interface {
	Search(ctx context.Context, query string) ([]FoodRecord, error)
}
