package adapthttp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	adapthttp "calories/internal/adapter/http"
	"calories/internal/app"
	"calories/internal/debounce"
	"calories/internal/domain"
)

// ---------------------------------------------------------------------------
// Mock repositories (function-fields pattern)
// ---------------------------------------------------------------------------

type mockLedgerRepo struct {
	mu     sync.Mutex
	state  *domain.LedgerState
	saveFn func(ctx context.Context, userID int64, state domain.LedgerState) error
}

func (m *mockLedgerRepo) LoadLedger(ctx context.Context, userID int64) (*domain.LedgerState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, nil
	}
	c := m.state.Clone()
	return &c, nil
}

func (m *mockLedgerRepo) SaveLedger(ctx context.Context, userID int64, state domain.LedgerState) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, userID, state)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := state.Clone()
	m.state = &c
	return nil
}

type mockSearcher struct {
	calls    atomic.Int32
	searchFn func(ctx context.Context, query string) ([]domain.FoodRecord, error)
}

func (m *mockSearcher) Search(ctx context.Context, query string) ([]domain.FoodRecord, error) {
	m.calls.Add(1)
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return []domain.FoodRecord{
		{Name: "Apple", CaloriesPer100g: 52, ProteinPer100g: 0.3, CarbsPer100g: 14, FatPer100g: 0.2},
	}, nil
}

type mockChatModel struct {
	generateFn func(ctx context.Context, turns []domain.ChatMessage) (string, error)
}

func (m *mockChatModel) Generate(ctx context.Context, turns []domain.ChatMessage) (string, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, turns)
	}
	return "Drink water.", nil
}

type mockUserRepo struct{}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	return &domain.User{ID: 1, Username: username}, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	return 0, nil
}

type mockSessionRepo struct{}

func (m *mockSessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	return nil
}

// ---------------------------------------------------------------------------
// Test-server helper
// ---------------------------------------------------------------------------

type testDeps struct {
	ledger   *mockLedgerRepo
	searcher *mockSearcher
	chat     domain.ChatModel
	search   *debounce.Group
}

func fixedClock() time.Time {
	return time.Date(2026, 2, 8, 12, 0, 0, 0, time.Local)
}

func newTestServer(t *testing.T, deps testDeps) *httptest.Server {
	t.Helper()

	if deps.ledger == nil {
		deps.ledger = &mockLedgerRepo{}
	}
	if deps.searcher == nil {
		deps.searcher = &mockSearcher{}
	}

	ledger := app.NewLedgerService(deps.ledger).WithClock(fixedClock)
	svc := adapthttp.Services{
		Ledger:  ledger,
		History: app.NewHistoryService(ledger),
		Foods:   app.NewFoodService(deps.searcher),
		Chat:    app.NewChatService(deps.chat),
		Auth:    app.NewAuthService(&mockUserRepo{}, &mockSessionRepo{}),
	}

	webDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(webDir, "index.html"), []byte("<html></html>"), 0o600); err != nil {
		t.Fatal(err)
	}

	srv := adapthttp.New(svc, deps.search, webDir).WithoutAuth()
	return httptest.NewServer(srv.Handler())
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return m
}

func doJSON(t *testing.T, method, url string, payload any) *http.Response {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, &body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func summaryOf(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	sum, ok := body["summary"].(map[string]any)
	if !ok {
		t.Fatalf("response missing 'summary': %v", body)
	}
	return sum
}

var chicken = map[string]any{
	"name":            "Chicken Breast",
	"caloriesPer100g": 165,
	"proteinPer100g":  31,
	"carbsPer100g":    0,
	"fatPer100g":      3.6,
	"category":        "Proteins",
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["ok"] != true {
		t.Fatalf("expected ok=true, got %v", body["ok"])
	}
}

func TestLedgerGet_Default(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	defer ts.Close()

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/ledger", nil)
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	sum := summaryOf(t, decodeBody(t, resp))
	if sum["selectedDate"] != "2026-02-08" {
		t.Errorf("expected selectedDate 2026-02-08, got %v", sum["selectedDate"])
	}
	if sum["dailyGoal"] != nil || sum["remainingCalories"] != nil {
		t.Errorf("expected unset goal, got %v / %v", sum["dailyGoal"], sum["remainingCalories"])
	}
	if sum["totalCalories"] != float64(0) {
		t.Errorf("expected 0 calories, got %v", sum["totalCalories"])
	}
}

func TestAddMeal_ScalesFood(t *testing.T) {
	repo := &mockLedgerRepo{}
	ts := newTestServer(t, testDeps{ledger: repo})
	defer ts.Close()

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/ledger/meals", map[string]any{"food": chicken, "portionGrams": 150})
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	entry, ok := body["entry"].(map[string]any)
	if !ok {
		t.Fatalf("response missing 'entry': %v", body)
	}
	if entry["calories"] != float64(248) || entry["protein"] != 46.5 || entry["fat"] != 5.4 || entry["servingLabel"] != "150g" {
		t.Errorf("unexpected scaled entry %v", entry)
	}
	if entry["loggedDate"] != "2026-02-08" || entry["id"] == "" {
		t.Errorf("entry not stamped: %v", entry)
	}
	if sum := summaryOf(t, body); sum["totalCalories"] != float64(248) {
		t.Errorf("expected total 248, got %v", sum["totalCalories"])
	}
	if repo.state == nil || len(repo.state.Entries) != 1 {
		t.Fatalf("expected the entry to be persisted, got %+v", repo.state)
	}
}

func TestAddMeal_Validation(t *testing.T) {
	tests := []struct {
		name       string
		payload    map[string]any
		wantStatus int
	}{
		{"food with portion", map[string]any{"food": chicken, "portionGrams": 100}, http.StatusCreated},
		{"manual meal", map[string]any{"meal": map[string]any{"name": "Rice", "calories": 200}}, http.StatusCreated},
		{"portion zero", map[string]any{"food": chicken, "portionGrams": 0}, http.StatusBadRequest},
		{"portion negative", map[string]any{"food": chicken, "portionGrams": -5}, http.StatusBadRequest},
		{"portion missing", map[string]any{"food": chicken}, http.StatusBadRequest},
		{"food with negative nutrient", map[string]any{"food": map[string]any{"name": "X", "caloriesPer100g": -1}, "portionGrams": 100}, http.StatusBadRequest},
		{"meal missing calories", map[string]any{"meal": map[string]any{"name": "Rice"}}, http.StatusBadRequest},
		{"meal negative calories", map[string]any{"meal": map[string]any{"name": "Rice", "calories": -10}}, http.StatusBadRequest},
		{"meal fractional calories", map[string]any{"meal": map[string]any{"name": "Rice", "calories": 10.5}}, http.StatusBadRequest},
		{"meal empty name", map[string]any{"meal": map[string]any{"name": "", "calories": 10}}, http.StatusBadRequest},
		{"meal negative protein", map[string]any{"meal": map[string]any{"name": "Rice", "calories": 10, "protein": -1}}, http.StatusBadRequest},
		{"both food and meal", map[string]any{"food": chicken, "portionGrams": 100, "meal": map[string]any{"name": "Rice", "calories": 10}}, http.StatusBadRequest},
		{"empty body", map[string]any{}, http.StatusBadRequest},
		{"unknown field", map[string]any{"foo": 1}, http.StatusBadRequest},
	}

	ts := newTestServer(t, testDeps{})
	defer ts.Close()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, ts.URL+"/api/ledger/meals", tc.payload)
			defer resp.Body.Close() //nolint:errcheck

			if resp.StatusCode != tc.wantStatus {
				body := decodeBody(t, resp)
				t.Fatalf("expected %d, got %d; body: %v", tc.wantStatus, resp.StatusCode, body)
			}
		})
	}
}

func TestAddMeal_SaveFailureKeepsState(t *testing.T) {
	repo := &mockLedgerRepo{
		saveFn: func(context.Context, int64, domain.LedgerState) error { return errors.New("disk full") },
	}
	ts := newTestServer(t, testDeps{ledger: repo})
	defer ts.Close()

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/ledger/meals", map[string]any{"food": chicken, "portionGrams": 100})
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/ledger", nil)
	defer resp.Body.Close() //nolint:errcheck
	if sum := summaryOf(t, decodeBody(t, resp)); sum["mealCount"] != float64(0) {
		t.Errorf("failed save must not change the ledger, got %v meals", sum["mealCount"])
	}
}

func TestRemoveMeal(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	defer ts.Close()

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/ledger/meals", map[string]any{"meal": map[string]any{"name": "Toast", "calories": 80}})
	entry := decodeBody(t, resp)["entry"].(map[string]any)
	resp.Body.Close() //nolint:errcheck
	id := entry["id"].(string)

	resp = doJSON(t, http.MethodDelete, ts.URL+"/api/ledger/meals/"+id, nil)
	body := decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK || body["removed"] != true {
		t.Fatalf("expected removed=true, got %d %v", resp.StatusCode, body)
	}
	if sum := summaryOf(t, body); sum["totalCalories"] != float64(0) {
		t.Errorf("expected total 0 after removal, got %v", sum["totalCalories"])
	}

	resp = doJSON(t, http.MethodDelete, ts.URL+"/api/ledger/meals/"+id, nil)
	defer resp.Body.Close() //nolint:errcheck
	if body := decodeBody(t, resp); body["removed"] != false {
		t.Errorf("removing a missing id should be a no-op, got %v", body["removed"])
	}
}

func TestSetGoal(t *testing.T) {
	tests := []struct {
		name       string
		payload    map[string]any
		wantStatus int
	}{
		{"valid", map[string]any{"goal": 1800}, http.StatusOK},
		{"zero", map[string]any{"goal": 0}, http.StatusBadRequest},
		{"negative", map[string]any{"goal": -100}, http.StatusBadRequest},
		{"fractional", map[string]any{"goal": 1800.5}, http.StatusBadRequest},
		{"missing", map[string]any{}, http.StatusBadRequest},
	}

	ts := newTestServer(t, testDeps{})
	defer ts.Close()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPut, ts.URL+"/api/ledger/goal", tc.payload)
			defer resp.Body.Close() //nolint:errcheck

			body := decodeBody(t, resp)
			if resp.StatusCode != tc.wantStatus {
				t.Fatalf("expected %d, got %d; body: %v", tc.wantStatus, resp.StatusCode, body)
			}
			if tc.wantStatus == http.StatusOK {
				sum := summaryOf(t, body)
				if sum["dailyGoal"] != float64(1800) || sum["remainingCalories"] != float64(1800) {
					t.Errorf("unexpected summary %v", sum)
				}
			}
		})
	}

	// Failed updates leave the goal from the valid case in place.
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/ledger", nil)
	defer resp.Body.Close() //nolint:errcheck
	if sum := summaryOf(t, decodeBody(t, resp)); sum["dailyGoal"] != float64(1800) {
		t.Errorf("expected goal 1800, got %v", sum["dailyGoal"])
	}
}

func TestSetDate(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	defer ts.Close()

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/ledger/meals", map[string]any{"meal": map[string]any{"name": "Soup", "calories": 650}})
	resp.Body.Close() //nolint:errcheck

	tests := []struct {
		name       string
		payload    map[string]any
		wantStatus int
		wantDate   string
		wantTotal  float64
	}{
		{"next day", map[string]any{"date": "2026-02-09"}, http.StatusOK, "2026-02-09", 0},
		{"back one day", map[string]any{"offsetDays": -1}, http.StatusOK, "2026-02-08", 650},
		{"malformed", map[string]any{"date": "02/09/2026"}, http.StatusBadRequest, "", 0},
		{"both", map[string]any{"date": "2026-02-09", "offsetDays": 1}, http.StatusBadRequest, "", 0},
		{"neither", map[string]any{}, http.StatusBadRequest, "", 0},
		{"offset past year 9999", map[string]any{"offsetDays": 3000000}, http.StatusBadRequest, "", 0},
		{"still on last valid date", map[string]any{"offsetDays": 0}, http.StatusOK, "2026-02-08", 650},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPut, ts.URL+"/api/ledger/date", tc.payload)
			defer resp.Body.Close() //nolint:errcheck

			body := decodeBody(t, resp)
			if resp.StatusCode != tc.wantStatus {
				t.Fatalf("expected %d, got %d; body: %v", tc.wantStatus, resp.StatusCode, body)
			}
			if tc.wantStatus != http.StatusOK {
				return
			}
			sum := summaryOf(t, body)
			if sum["selectedDate"] != tc.wantDate || sum["totalCalories"] != tc.wantTotal {
				t.Errorf("expected %s/%v, got %v/%v", tc.wantDate, tc.wantTotal, sum["selectedDate"], sum["totalCalories"])
			}
		})
	}
}

func TestHistory(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	defer ts.Close()

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/ledger/meals", map[string]any{"meal": map[string]any{"name": "Pasta", "calories": 700}})
	resp.Body.Close() //nolint:errcheck

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/ledger/history?days=3", nil)
	defer resp.Body.Close() //nolint:errcheck

	body := decodeBody(t, resp)
	items, ok := body["items"].([]any)
	if !ok || len(items) != 3 {
		t.Fatalf("expected 3 items, got %v", body["items"])
	}
	last := items[2].(map[string]any)
	if last["day"] != "2026-02-08" || last["calories"] != float64(700) {
		t.Errorf("unexpected last point %v", last)
	}
	if first := items[0].(map[string]any); first["day"] != "2026-02-06" || first["calories"] != float64(0) {
		t.Errorf("unexpected first point %v", first)
	}
}

func TestFoodSearch(t *testing.T) {
	searcher := &mockSearcher{}
	ts := newTestServer(t, testDeps{searcher: searcher})
	defer ts.Close()

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/foods/search?q=a", nil)
	body := decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	if items := body["items"].([]any); len(items) != 0 {
		t.Errorf("short query should return nothing, got %v", items)
	}
	if searcher.calls.Load() != 0 {
		t.Errorf("short query must not reach the provider")
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/foods/search?q=apple", nil)
	defer resp.Body.Close() //nolint:errcheck
	body = decodeBody(t, resp)
	items := body["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %v", items)
	}
	if item := items[0].(map[string]any); item["name"] != "Apple" || item["category"] != "Other" {
		t.Errorf("unexpected item %v", item)
	}
}

func TestFoodSearch_ProviderFailure(t *testing.T) {
	searcher := &mockSearcher{
		searchFn: func(context.Context, string) ([]domain.FoodRecord, error) { return nil, errors.New("timeout") },
	}
	ts := newTestServer(t, testDeps{searcher: searcher})
	defer ts.Close()

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/foods/search?q=apple", nil)
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if items := decodeBody(t, resp)["items"].([]any); len(items) != 0 {
		t.Errorf("expected empty result, got %v", items)
	}
}

func TestFoodSearch_LiveDebounced(t *testing.T) {
	searcher := &mockSearcher{}
	ts := newTestServer(t, testDeps{searcher: searcher, search: debounce.New(100 * time.Millisecond)})
	defer ts.Close()

	first := make(chan int, 1)
	go func() {
		resp, err := http.Get(ts.URL + "/api/foods/search?q=ap&live=1")
		if err != nil {
			first <- 0
			return
		}
		resp.Body.Close() //nolint:errcheck
		first <- resp.StatusCode
	}()

	time.Sleep(20 * time.Millisecond)
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/foods/search?q=apple&live=1", nil)
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for the last keystroke, got %d", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["query"] != "apple" {
		t.Errorf("expected query apple, got %v", body["query"])
	}
	if code := <-first; code != http.StatusNoContent {
		t.Errorf("expected 204 for the superseded keystroke, got %d", code)
	}
	if n := searcher.calls.Load(); n != 1 {
		t.Errorf("expected a single provider call, got %d", n)
	}
}

func TestFoodSuggestionsAndCategories(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	defer ts.Close()

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/foods/suggestions?category=All", nil)
	body := decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	if items := body["items"].([]any); len(items) != 0 {
		t.Errorf("'All' should return nothing, got %v", items)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/foods/suggestions?category=Fruits", nil)
	body = decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	items := body["items"].([]any)
	if len(items) != 1 || items[0].(map[string]any)["category"] != "Fruits" {
		t.Errorf("expected items tagged Fruits, got %v", items)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/foods/categories", nil)
	defer resp.Body.Close() //nolint:errcheck
	cats := decodeBody(t, resp)["items"].([]any)
	if len(cats) == 0 || cats[0] != "All" {
		t.Errorf("expected categories starting with All, got %v", cats)
	}
}

func TestFoodScale(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	defer ts.Close()

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/foods/scale", map[string]any{"food": chicken, "portionGrams": 150})
	body := decodeBody(t, resp)
	resp.Body.Close() //nolint:errcheck
	scaled := body["scaled"].(map[string]any)
	if scaled["calories"] != float64(248) || scaled["protein"] != 46.5 {
		t.Errorf("unexpected preview %v", scaled)
	}

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/foods/scale", map[string]any{"food": chicken, "portionGrams": -1})
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestChat(t *testing.T) {
	tests := []struct {
		name       string
		model      domain.ChatModel
		message    string
		wantStatus int
	}{
		{"reply", &mockChatModel{}, "what should I eat?", http.StatusOK},
		{"empty message", &mockChatModel{}, "  ", http.StatusBadRequest},
		{"not configured", nil, "hi", http.StatusServiceUnavailable},
		{"provider error", &mockChatModel{generateFn: func(context.Context, []domain.ChatMessage) (string, error) {
			return "", errors.New("quota")
		}}, "hi", http.StatusBadGateway},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t, testDeps{chat: tc.model})
			defer ts.Close()

			resp := doJSON(t, http.MethodPost, ts.URL+"/api/chat", map[string]any{"message": tc.message})
			defer resp.Body.Close() //nolint:errcheck

			body := decodeBody(t, resp)
			if resp.StatusCode != tc.wantStatus {
				t.Fatalf("expected %d, got %d; body: %v", tc.wantStatus, resp.StatusCode, body)
			}
			if tc.wantStatus == http.StatusOK && body["reply"] != "Drink water." {
				t.Errorf("unexpected reply %v", body["reply"])
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, testDeps{})
	defer ts.Close()

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"POST ledger", http.MethodPost, "/api/ledger"},
		{"GET ledger/meals", http.MethodGet, "/api/ledger/meals"},
		{"GET ledger/meals/{id}", http.MethodGet, "/api/ledger/meals/abc"},
		{"POST ledger/goal", http.MethodPost, "/api/ledger/goal"},
		{"GET ledger/date", http.MethodGet, "/api/ledger/date"},
		{"POST ledger/history", http.MethodPost, "/api/ledger/history"},
		{"POST foods/search", http.MethodPost, "/api/foods/search"},
		{"GET foods/scale", http.MethodGet, "/api/foods/scale"},
		{"GET chat", http.MethodGet, "/api/chat"},
		{"GET auth/login", http.MethodGet, "/api/auth/login"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, ts.URL+tc.path, nil)
			if err != nil {
				t.Fatalf("new request: %v", err)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close() //nolint:errcheck

			if resp.StatusCode != http.StatusMethodNotAllowed {
				t.Fatalf("expected 405, got %d", resp.StatusCode)
			}
		})
	}
}
