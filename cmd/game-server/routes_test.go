package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"bingo-server/internal/auth"
	"bingo-server/internal/config"
	"bingo-server/internal/store"
	"bingo-server/internal/ws"
)

func testRouter(t *testing.T) *chi.Mux {
	t.Helper()
	// pgxpool connects lazily; no database is needed to build the router
	st, err := store.New("postgres://localhost:5432/bingo_test")
	if err != nil {
		t.Fatalf("store init: %v", err)
	}
	t.Cleanup(st.Close)
	tokens := auth.NewTokens("test-secret", time.Hour)
	return newRouter(st, config.ServerConfig{}, tokens, ws.NewServer(st, tokens))
}

func TestRouterRegistersExpectedRoutes(t *testing.T) {
	r := testRouter(t)

	got := map[string]bool{}
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		got[method+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	want := []string{
		"GET /ws",
		"GET /healthz",
		"POST /api/register",
		"POST /api/games",
		"GET /api/games",
		"GET /api/games/{game_id}",
		"PUT /api/games/{game_id}/winners",
		"GET /api/debug/vars",
	}
	for _, route := range want {
		if !got[route] {
			t.Fatalf("route %q not registered; have %v", route, got)
		}
	}
}
