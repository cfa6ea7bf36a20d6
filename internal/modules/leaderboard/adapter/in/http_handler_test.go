package in_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gameservice "wikigo/internal/modules/game/service"
	gameusecase "wikigo/internal/modules/game/usecase"
	leaderboardhttp "wikigo/internal/modules/leaderboard/adapter/in"
	leaderboardadapter "wikigo/internal/modules/leaderboard/adapter/out"
	"wikigo/internal/modules/leaderboard/service"
	"wikigo/internal/modules/leaderboard/usecase"
	"wikigo/internal/platform/clock"
	"wikigo/internal/platform/id"
	"wikigo/internal/platform/sqlitedb"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	clk := clock.Fixed(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "wikigo.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	completions, err := leaderboardadapter.NewSQLiteCompletionStore(db)
	if err != nil {
		t.Fatalf("completion store: %v", err)
	}
	dailies, err := leaderboardadapter.NewSQLiteDailyStore(db)
	if err != nil {
		t.Fatalf("daily store: %v", err)
	}
	board := usecase.NewInteractor(service.NewLeaderboardService(clk, completions, dailies, nil), nil)
	game := gameusecase.NewInteractor(gameservice.NewGameService(clk, id.UUID{}, nil, nil), gameusecase.Deps{Leaderboard: board})
	srv := httptest.NewServer(leaderboardhttp.NewHTTPHandler(board, game, nil).Router())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return resp.StatusCode, env
}

func TestHealth(t *testing.T) {
	t.Parallel()
	srv := newServer(t)
	status, env := do(t, srv, http.MethodGet, "/health", "")
	if status != http.StatusOK || !env.Success {
		t.Fatalf("unexpected health: %d %+v", status, env)
	}
}

func TestCompletionsRecomputesScore(t *testing.T) {
	t.Parallel()
	srv := newServer(t)

	status, env := do(t, srv, http.MethodPost, "/completions", `{"username":"ada","moves":3,"time_ms":21900,"score":999}`)
	if status != http.StatusBadRequest || env.Success || !strings.Contains(env.Error, "expected 949") {
		t.Fatalf("tampered score accepted: %d %+v", status, env)
	}

	status, env = do(t, srv, http.MethodPost, "/completions", `{"username":"ada","moves":3,"time_ms":21900,"score":949,"history":["A","B","C","D"]}`)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("valid completion rejected: %d %+v", status, env)
	}
	var out struct {
		Stored     bool `json:"stored"`
		GlobalRank *int `json:"global_rank"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode submit: %v", err)
	}
	if !out.Stored || out.GlobalRank == nil || *out.GlobalRank != 1 {
		t.Fatalf("unexpected submit output: %+v", out)
	}

	status, env = do(t, srv, http.MethodGet, "/leaderboard?date=2026-03-14&limit=5", "")
	if status != http.StatusOK {
		t.Fatalf("leaderboard: %d %+v", status, env)
	}
	var entries []struct {
		Position int    `json:"position"`
		Username string `json:"username"`
		Score    int    `json:"score"`
	}
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		t.Fatalf("decode leaderboard: %v", err)
	}
	if len(entries) != 1 || entries[0].Username != "ada" || entries[0].Position != 1 || entries[0].Score != 949 {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	status, env = do(t, srv, http.MethodGet, "/leaderboard/users/ada", "")
	if status != http.StatusOK || !strings.Contains(string(env.Data), `"rank":1`) {
		t.Fatalf("unexpected rank: %d %s", status, env.Data)
	}
	status, env = do(t, srv, http.MethodGet, "/users/ada/stats", "")
	if status != http.StatusOK || !strings.Contains(string(env.Data), `"streak":1`) {
		t.Fatalf("unexpected stats: %d %s", status, env.Data)
	}
}

func TestLeaderboardRejectsBadQuery(t *testing.T) {
	t.Parallel()
	srv := newServer(t)
	for _, path := range []string{"/leaderboard?limit=ten", "/leaderboard?offset=-1", "/leaderboard?date=yesterday"} {
		status, env := do(t, srv, http.MethodGet, path, "")
		if status != http.StatusBadRequest || env.Success {
			t.Fatalf("%s: expected 400, got %d %+v", path, status, env)
		}
	}
	status, env := do(t, srv, http.MethodGet, "/leaderboard", "")
	if status != http.StatusOK || string(env.Data) != "[]" {
		t.Fatalf("empty board: %d %s", status, env.Data)
	}
}

func TestDailyNotFound(t *testing.T) {
	t.Parallel()
	srv := newServer(t)
	status, env := do(t, srv, http.MethodGet, "/daily?date=2026-03-14", "")
	if status != http.StatusNotFound || env.Success {
		t.Fatalf("expected 404, got %d %+v", status, env)
	}
	status, env = do(t, srv, http.MethodGet, "/daily/yesterday", "")
	if status != http.StatusOK || !strings.Contains(string(env.Data), `"challenge":null`) {
		t.Fatalf("unexpected yesterday: %d %s", status, env.Data)
	}
}

func TestChallengeDecode(t *testing.T) {
	t.Parallel()
	srv := newServer(t)
	status, env := do(t, srv, http.MethodGet, "/challenge?start=Moon&end=Tide&moves=2&time=14&score=966", "")
	if status != http.StatusOK {
		t.Fatalf("challenge: %d", status)
	}
	var out struct {
		Challenge *struct {
			Username string `json:"username"`
			Start    string `json:"start"`
			Score    int    `json:"score"`
		} `json:"challenge"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Challenge == nil || out.Challenge.Username != "Someone" || out.Challenge.Start != "Moon" || out.Challenge.Score != 966 {
		t.Fatalf("unexpected challenge: %s", env.Data)
	}

	_, env = do(t, srv, http.MethodGet, "/challenge?start=Moon", "")
	if string(env.Data) != `{"challenge":null}` {
		t.Fatalf("incomplete challenge should decode to null, got %s", env.Data)
	}
}
