package adapthttp

import (
	"errors"
	"math"
	"net/http"

	"calories/internal/domain"
)

const defaultHistoryDays = 30

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.writeSummary(w, r, http.StatusOK, nil)
}

// mealInput is a meal entered by hand. Calories is a pointer so a missing
// value can be told apart from zero.
type mealInput struct {
	Name         string   `json:"name"`
	Calories     *float64 `json:"calories"`
	Protein      float64  `json:"protein"`
	Carbs        float64  `json:"carbs"`
	Fat          float64  `json:"fat"`
	ServingLabel string   `json:"servingLabel"`
	Category     string   `json:"category"`
}

func (m mealInput) scaled() (domain.ScaledFood, error) {
	if m.Calories == nil {
		return domain.ScaledFood{}, domain.ErrInvalidMeal
	}
	c := *m.Calories
	if c < 0 || c != math.Trunc(c) || c > math.MaxInt32 {
		return domain.ScaledFood{}, domain.ErrInvalidMeal
	}
	food := domain.ScaledFood{
		Name:         m.Name,
		Calories:     int(c),
		Protein:      m.Protein,
		Carbs:        m.Carbs,
		Fat:          m.Fat,
		ServingLabel: m.ServingLabel,
		Category:     m.Category,
	}
	return food, food.Validate()
}

func (s *Server) handleAddMeal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Food         *domain.FoodRecord `json:"food"`
		PortionGrams *float64           `json:"portionGrams"`
		Meal         *mealInput         `json:"meal"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	user := userFromContext(r)
	var (
		entry domain.MealEntry
		err   error
	)
	switch {
	case body.Food != nil && body.Meal != nil:
		writeError(w, http.StatusBadRequest, errors.New("send either food or meal, not both"))
		return
	case body.Food != nil:
		if body.PortionGrams == nil {
			writeServiceError(w, domain.ErrInvalidPortion)
			return
		}
		entry, err = s.ledger.AddFood(r.Context(), user.ID, *body.Food, *body.PortionGrams)
	case body.Meal != nil:
		food, verr := body.Meal.scaled()
		if verr != nil {
			writeServiceError(w, verr)
			return
		}
		entry, err = s.ledger.AddMeal(r.Context(), user.ID, food)
	default:
		writeError(w, http.StatusBadRequest, errors.New("food or meal is required"))
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	s.writeSummary(w, r, http.StatusCreated, map[string]any{"entry": entry})
}

func (s *Server) handleRemoveMeal(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	removed, err := s.ledger.RemoveMeal(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.writeSummary(w, r, http.StatusOK, map[string]any{"removed": removed})
}

func (s *Server) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Goal *float64 `json:"goal"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Goal == nil {
		writeServiceError(w, domain.ErrInvalidGoal)
		return
	}
	goal, err := domain.GoalFromFloat(*body.Goal)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := s.ledger.SetDailyGoal(r.Context(), userFromContext(r).ID, goal); err != nil {
		writeServiceError(w, err)
		return
	}
	s.writeSummary(w, r, http.StatusOK, nil)
}

func (s *Server) handleSetDate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Date       *string `json:"date"`
		OffsetDays *int    `json:"offsetDays"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	user := userFromContext(r)
	var err error
	switch {
	case body.Date != nil && body.OffsetDays != nil:
		writeError(w, http.StatusBadRequest, errors.New("send either date or offsetDays, not both"))
		return
	case body.Date != nil:
		err = s.ledger.SetSelectedDate(r.Context(), user.ID, *body.Date)
	case body.OffsetDays != nil:
		_, err = s.ledger.ShiftSelectedDate(r.Context(), user.ID, *body.OffsetDays)
	default:
		writeError(w, http.StatusBadRequest, errors.New("date or offsetDays is required"))
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.writeSummary(w, r, http.StatusOK, nil)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	days := intQuery(r, "days", defaultHistoryDays)
	points, err := s.history.GetDaily(r.Context(), userFromContext(r).ID, days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": len(points), "items": points})
}

// writeSummary renders the selected-day summary, merged with extra fields.
func (s *Server) writeSummary(w http.ResponseWriter, r *http.Request, status int, extra map[string]any) {
	sum, err := s.ledger.Summary(r.Context(), userFromContext(r).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := map[string]any{"summary": sum}
	for k, v := range extra {
		out[k] = v
	}
	writeJSON(w, status, out)
}
