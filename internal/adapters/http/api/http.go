// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mkovel/pitchside/internal/app"
	"github.com/mkovel/pitchside/internal/domain/dedupe"
	"github.com/mkovel/pitchside/internal/domain/eligibility"
	"github.com/mkovel/pitchside/internal/domain/model"
	"github.com/mkovel/pitchside/internal/domain/playerstats"
	"github.com/mkovel/pitchside/internal/domain/standings"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	dedupe.Deduper

	Standings(ctx context.Context) []standings.Row
	MatchSummaries(ctx context.Context) ([]app.MatchSummary, error)
	MatchDetail(ctx context.Context, matchID int64) (*app.MatchDetail, error)
	ProposeEvent(ctx context.Context, matchID int64, p eligibility.Proposal) ([]model.MatchEvent, error)
	DeleteEvent(ctx context.Context, matchID, eventID int64) (int, error)
	PlayerOverview(ctx context.Context, playerID int64) (*app.PlayerOverview, error)
	TopPlayers(ctx context.Context, metric playerstats.Metric, limit int) []playerstats.Ranked
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	standingsHandler *StandingsHandler
	matchesHandler   *MatchesHandler
	eventsHandler    *EventsHandler
	playersHandler   *PlayersHandler
}

// NewServer creates a new API server with all handlers. maxTopLimit caps
// the top-list query size.
func NewServer(deps Dependencies, maxTopLimit int) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		standingsHandler: NewStandingsHandler(deps),
		matchesHandler:   NewMatchesHandler(deps),
		eventsHandler:    NewEventsHandler(deps),
		playersHandler:   NewPlayersHandler(deps, maxTopLimit),
	}
}

// Register attaches all HTTP routes to the router.
func (s *Server) Register(_ context.Context, r *mux.Router) {
	r.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")).Methods(http.MethodGet)
	r.HandleFunc("/metrics", s.healthHandler.HandleMetrics).Methods(http.MethodGet)
	r.HandleFunc("/standings", MetricsMiddleware(s.standingsHandler.HandleGetStandings, "standings")).Methods(http.MethodGet)
	r.HandleFunc("/matches", MetricsMiddleware(s.matchesHandler.HandleListMatches, "matches")).Methods(http.MethodGet)
	r.HandleFunc("/matches/{id}", MetricsMiddleware(s.matchesHandler.HandleGetMatch, "match_detail")).Methods(http.MethodGet)
	r.HandleFunc("/matches/{id}/events", MetricsMiddleware(s.eventsHandler.HandlePostEvent, "post_event")).Methods(http.MethodPost)
	r.HandleFunc("/matches/{id}/events/{eventID}", MetricsMiddleware(s.eventsHandler.HandleDeleteEvent, "delete_event")).Methods(http.MethodDelete)
	r.HandleFunc("/players/{id}/stats", MetricsMiddleware(s.playersHandler.HandleGetPlayerStats, "player_stats")).Methods(http.MethodGet)
	r.HandleFunc("/stats/top", MetricsMiddleware(s.playersHandler.HandleGetTop, "stats_top")).Methods(http.MethodGet)
}

type errorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Reasons []string `json:"reasons,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeRejection renders a validation rejection with its full reason list.
func writeRejection(w http.ResponseWriter, rej *eligibility.Rejection) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Code:    "rejected",
		Message: "event rejected",
		Reasons: rej.Reasons,
	})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repositoryNotFound)
}
