package adapthttp

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"calories/internal/debounce"
	"calories/internal/domain"
)

func (s *Server) handleFoodSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if !boolQuery(r, "live") || s.search == nil {
		writeJSON(w, http.StatusOK, map[string]any{"query": query, "items": s.foods.Search(r.Context(), query)})
		return
	}

	// Live searches fire on every keystroke; only the last one per user
	// within the quiet period reaches the provider.
	var items []domain.FoodRecord
	key := strconv.FormatInt(userFromContext(r).ID, 10)
	err := s.search.Do(r.Context(), key, func(ctx context.Context) error {
		items = s.foods.Search(ctx, query)
		return nil
	})
	switch {
	case errors.Is(err, debounce.ErrSuperseded):
		w.WriteHeader(http.StatusNoContent)
		return
	case err != nil:
		// Client went away.
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": query, "items": items})
}

func (s *Server) handleFoodSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	category := r.URL.Query().Get("category")
	writeJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"items":    s.foods.CategorySuggestions(r.Context(), category),
	})
}

func (s *Server) handleFoodCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": s.foods.Categories()})
}

// handleFoodScale previews a portion without logging it.
func (s *Server) handleFoodScale(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Food         domain.FoodRecord `json:"food"`
		PortionGrams *float64          `json:"portionGrams"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.PortionGrams == nil {
		writeServiceError(w, domain.ErrInvalidPortion)
		return
	}

	scaled, err := domain.Scale(body.Food, *body.PortionGrams)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scaled": scaled})
}
