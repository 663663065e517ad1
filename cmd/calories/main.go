package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"calories/internal/adapter/calorieninjas"
	"calories/internal/adapter/catalog"
	"calories/internal/adapter/gemini"
	adapthttp "calories/internal/adapter/http"
	"calories/internal/adapter/memory"
	"calories/internal/adapter/postgres"
	"calories/internal/adapter/sqlite"
	"calories/internal/app"
	"calories/internal/config"
	"calories/internal/debounce"
	"calories/internal/domain"
)

const sessionPurgeInterval = time.Hour

// store is what every persistence adapter provides.
type store interface {
	domain.LedgerRepository
	domain.UserRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, sessions, closer, err := openStore(cfg)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() { _ = closer.Close() }()

	var searcher domain.FoodSearcher
	if cfg.CalorieNinjasAPIKey != "" {
		searcher = calorieninjas.New(cfg.CalorieNinjasAPIKey, cfg.CalorieNinjasBaseURL)
		log.Printf("food search: calorieninjas")
	} else {
		searcher = catalog.New()
		log.Printf("food search: built-in catalog")
	}

	var model domain.ChatModel
	if cfg.GeminiAPIKey != "" {
		model = gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
	} else {
		log.Printf("GEMINI_API_KEY not set, assistant disabled")
	}

	ledgerSvc := app.NewLedgerService(db)
	authSvc := app.NewAuthService(db, sessions)

	srv := adapthttp.New(adapthttp.Services{
		Ledger:  ledgerSvc,
		History: app.NewHistoryService(ledgerSvc),
		Foods:   app.NewFoodService(searcher),
		Chat:    app.NewChatService(model),
		Auth:    authSvc,
	}, debounce.New(cfg.SearchDebounce), cfg.WebDir)

	if cfg.OIDC.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		oidcCfg, err := adapthttp.NewOIDCConfig(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID, cfg.OIDC.ClientSecret, cfg.OIDC.RedirectURL)
		cancel()
		if err != nil {
			log.Fatalf("sso: %v", err)
		}
		srv.WithOIDC(oidcCfg)
		log.Printf("sso enabled: %s", cfg.OIDC.Issuer)
	}

	go purgeSessions(authSvc)

	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// openStore picks PostgreSQL, then SQLite, then memory.
func openStore(cfg config.Config) (store, domain.SessionRepository, io.Closer, error) {
	switch {
	case cfg.DatabaseURL != "":
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Printf("storage: postgres")
		return db, postgres.NewSessionRepo(db), db, nil
	case cfg.SQLitePath != "":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Printf("storage: sqlite %s", cfg.SQLitePath)
		return db, sqlite.NewSessionRepo(db), db, nil
	default:
		log.Printf("storage: memory (data is lost on restart)")
		db := memory.New()
		return db, db.NewSessionRepo(), db, nil
	}
}

func purgeSessions(auth *app.AuthService) {
	t := time.NewTicker(sessionPurgeInterval)
	defer t.Stop()
	for range t.C {
		if err := auth.PurgeExpiredSessions(context.Background()); err != nil {
			log.Printf("purge sessions: %v", err)
		}
	}
}
