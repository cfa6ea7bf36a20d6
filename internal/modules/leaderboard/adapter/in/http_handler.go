package in

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"

	gamein "wikigo/internal/modules/game/port/in"
	"wikigo/internal/modules/leaderboard/dto"
	leaderboardin "wikigo/internal/modules/leaderboard/port/in"
	apperrors "wikigo/internal/platform/errors"
	"wikigo/internal/platform/httpx"
)

// HTTPHandler serves the leaderboard query surface. Scores posted to
// /completions are recomputed server side.
type HTTPHandler struct {
	board leaderboardin.Usecase
	game  gamein.Usecase
	log   hclog.Logger
}

func NewHTTPHandler(board leaderboardin.Usecase, game gamein.Usecase, log hclog.Logger) HTTPHandler {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return HTTPHandler{board: board, game: game, log: log}
}

func (h HTTPHandler) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(httpx.Logger(h.log))
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard", h.leaderboard).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard/users/{username}", h.rank).Methods(http.MethodGet)
	r.HandleFunc("/users/{username}/stats", h.stats).Methods(http.MethodGet)
	r.HandleFunc("/completions", h.submit).Methods(http.MethodPost)
	r.HandleFunc("/daily", h.daily).Methods(http.MethodGet)
	r.HandleFunc("/daily/yesterday", h.yesterday).Methods(http.MethodGet)
	r.HandleFunc("/challenge", h.challenge).Methods(http.MethodGet)
	return r
}

func (h HTTPHandler) health(w http.ResponseWriter, _ *http.Request) {
	httpx.Success(w, map[string]string{"status": "ok"})
}

func (h HTTPHandler) leaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intParam(q.Get("limit"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	offset, err := intParam(q.Get("offset"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	entries, err := h.board.Leaderboard(r.Context(), dto.LeaderboardQuery{Date: q.Get("date"), Limit: limit, Offset: offset})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if entries == nil {
		entries = []dto.EntryOutput{}
	}
	httpx.Success(w, entries)
}

func (h HTTPHandler) rank(w http.ResponseWriter, r *http.Request) {
	rank, err := h.board.UserRank(r.Context(), mux.Vars(r)["username"], r.URL.Query().Get("date"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Success(w, rank)
}

func (h HTTPHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.board.UserStats(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Success(w, stats)
}

func (h HTTPHandler) submit(w http.ResponseWriter, r *http.Request) {
	var input dto.SubmitInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.Error(w, fmt.Errorf("%w: malformed completion: %v", apperrors.ErrInvalidInput, err))
		return
	}
	if want := h.game.Score(input.Moves, input.TimeMs).Final; want != input.Score {
		httpx.Error(w, fmt.Errorf("%w: score %d does not match %d moves in %dms (expected %d)",
			apperrors.ErrInvalidInput, input.Score, input.Moves, input.TimeMs, want))
		return
	}
	out, err := h.board.Submit(r.Context(), input)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Success(w, out)
}

func (h HTTPHandler) daily(w http.ResponseWriter, r *http.Request) {
	daily, err := h.board.Daily(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Success(w, daily)
}

func (h HTTPHandler) yesterday(w http.ResponseWriter, r *http.Request) {
	out, err := h.board.Yesterday(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Success(w, out)
}

// challenge never fails: incomplete links decode to a null challenge.
func (h HTTPHandler) challenge(w http.ResponseWriter, r *http.Request) {
	decoded, ok := h.game.DecodeChallenge(r.URL.RawQuery)
	if !ok {
		httpx.Success(w, map[string]any{"challenge": nil})
		return
	}
	httpx.Success(w, map[string]any{"challenge": decoded})
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q is not a non-negative integer", apperrors.ErrInvalidInput, raw)
	}
	return n, nil
}
