package adapthttp

import (
	"net/http"

	"calories/internal/app"
	"calories/internal/debounce"
)

// Services groups the application services the HTTP adapter drives.
type Services struct {
	Ledger  *app.LedgerService
	History *app.HistoryService
	Foods   *app.FoodService
	Chat    *app.ChatService
	Auth    *app.AuthService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	ledger  *app.LedgerService
	history *app.HistoryService
	foods   *app.FoodService
	chat    *app.ChatService
	authSvc *app.AuthService

	// search debounces live food searches per user. Nil disables debouncing.
	search *debounce.Group

	oidcConfig  OIDCConfig
	webDir      string
	disableAuth bool
}

// New creates a Server wired to the given application services.
func New(svc Services, search *debounce.Group, webDir string) *Server {
	return &Server{
		ledger:  svc.Ledger,
		history: svc.History,
		foods:   svc.Foods,
		chat:    svc.Chat,
		authSvc: svc.Auth,
		search:  search,
		webDir:  webDir,
	}
}

// WithOIDC enables single sign-on with the given provider settings.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidcConfig = cfg
	return s
}

// WithoutAuth serves every request as the local user. Used by tests and
// single-user setups behind a trusted proxy.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/setup", s.handleSetupUser)
	api.HandleFunc("/auth/config", s.handleConfig)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	api.Handle("/ledger", s.protect(s.handleLedger))
	api.Handle("/ledger/meals", s.protect(s.handleAddMeal))
	api.Handle("DELETE /ledger/meals/{id}", s.protect(s.handleRemoveMeal))
	api.Handle("/ledger/goal", s.protect(s.handleSetGoal))
	api.Handle("/ledger/date", s.protect(s.handleSetDate))
	api.Handle("/ledger/history", s.protect(s.handleHistory))

	api.Handle("/foods/search", s.protect(s.handleFoodSearch))
	api.Handle("/foods/suggestions", s.protect(s.handleFoodSuggestions))
	api.Handle("/foods/categories", s.protect(s.handleFoodCategories))
	api.Handle("/foods/scale", s.protect(s.handleFoodScale))

	api.Handle("/chat", s.protect(s.handleChat))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}

func (s *Server) protect(h http.HandlerFunc) http.Handler {
	return s.authMiddleware(h)
}
