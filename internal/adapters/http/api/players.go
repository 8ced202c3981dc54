package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mkovel/pitchside/internal/domain/playerstats"
)

// PlayersHandler serves player statistics and top lists.
type PlayersHandler struct {
	deps        Dependencies
	maxTopLimit int
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies, maxTopLimit int) *PlayersHandler {
	return &PlayersHandler{deps: deps, maxTopLimit: maxTopLimit}
}

type playerTotals struct {
	Goals   int `json:"goals"`
	Assists int `json:"assists"`
	Yellow  int `json:"yellow_cards"`
	Red     int `json:"red_cards"`
	Matches int `json:"matches"`
	Starts  int `json:"starts"`
}

type matchBreakdown struct {
	MatchID  int64 `json:"match_id"`
	TeamID   int64 `json:"team_id"`
	Goals    int   `json:"goals"`
	Assists  int   `json:"assists"`
	Yellow   int   `json:"yellow_cards"`
	Red      int   `json:"red_cards"`
	Starting bool  `json:"starting"`
}

type playerOverview struct {
	ID        int64            `json:"id"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Position  string           `json:"position"`
	TeamID    *int64           `json:"team_id,omitempty"`
	TeamName  string           `json:"team_name,omitempty"`
	Number    int              `json:"number,omitempty"`
	Totals    playerTotals     `json:"totals"`
	PerMatch  []matchBreakdown `json:"per_match"`
}

// HandleGetPlayerStats handles GET /players/{id}/stats requests.
func (h *PlayersHandler) HandleGetPlayerStats(w http.ResponseWriter, r *http.Request) {
	const op = "api.player_stats"
	playerID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	view, err := h.deps.PlayerOverview(r.Context(), playerID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	out := playerOverview{
		ID:        view.Player.ID,
		FirstName: view.Player.FirstName,
		LastName:  view.Player.LastName,
		Position:  string(view.Player.Position),
		Totals:    toPlayerTotals(view.Totals),
		PerMatch:  make([]matchBreakdown, 0, len(view.PerMatch)),
	}
	if view.Team != nil {
		out.TeamID = &view.Team.ID
		out.TeamName = view.Team.Name
		out.Number = view.Number
	}
	for _, b := range view.PerMatch {
		out.PerMatch = append(out.PerMatch, matchBreakdown{
			MatchID:  b.MatchID,
			TeamID:   b.TeamID,
			Goals:    b.Goals,
			Assists:  b.Assists,
			Yellow:   b.Yellow,
			Red:      b.Red,
			Starting: b.Starting,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type rankedPlayer struct {
	Rank      int    `json:"rank"`
	PlayerID  int64  `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Value     int    `json:"value"`
	Matches   int    `json:"matches"`
}

type topResponse struct {
	Metric  string         `json:"metric"`
	Players []rankedPlayer `json:"players"`
}

const defaultTopLimit = 10

// HandleGetTop handles GET /stats/top?metric=goals&limit=N requests.
func (h *PlayersHandler) HandleGetTop(w http.ResponseWriter, r *http.Request) {
	const op = "api.stats_top"
	metric, ok := playerstats.ParseMetric(r.URL.Query().Get("metric"))
	if !ok {
		err := errors.New("metric must be one of goals, assists, yellow, red")
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	limit := defaultTopLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("limit must be a positive integer")))
			return
		}
		limit = n
	}
	if limit > h.maxTopLimit {
		limit = h.maxTopLimit
	}

	ranked := h.deps.TopPlayers(r.Context(), metric, limit)
	out := topResponse{Metric: string(metric), Players: make([]rankedPlayer, 0, len(ranked))}
	for i, row := range ranked {
		out.Players = append(out.Players, rankedPlayer{
			Rank:      i + 1,
			PlayerID:  row.Player.ID,
			FirstName: row.Player.FirstName,
			LastName:  row.Player.LastName,
			Value:     row.Value,
			Matches:   row.Totals.Matches,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func toPlayerTotals(t playerstats.Totals) playerTotals {
	return playerTotals{
		Goals:   t.Goals,
		Assists: t.Assists,
		Yellow:  t.Yellow,
		Red:     t.Red,
		Matches: t.Matches,
		Starts:  t.Starts,
	}
}
