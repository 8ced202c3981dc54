package api

import (
	"context"
	"net/http"

	"github.com/mkovel/pitchside/internal/domain/standings"
)

// StandingsDependencies defines the interface for standings operations.
type StandingsDependencies interface {
	Standings(ctx context.Context) []standings.Row
}

// StandingsHandler handles league table requests.
type StandingsHandler struct {
	deps StandingsDependencies
}

// NewStandingsHandler creates a new standings handler.
func NewStandingsHandler(deps StandingsDependencies) *StandingsHandler {
	return &StandingsHandler{deps: deps}
}

type standingsRow struct {
	Rank         int    `json:"rank"`
	TeamID       int64  `json:"team_id"`
	Team         string `json:"team"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	GoalDiff     int    `json:"goal_diff"`
	Points       int    `json:"points"`
}

// HandleGetStandings handles GET /standings requests.
func (h *StandingsHandler) HandleGetStandings(w http.ResponseWriter, r *http.Request) {
	table := h.deps.Standings(r.Context())
	rows := make([]standingsRow, len(table))
	for i, row := range table {
		rows[i] = standingsRow{
			Rank:         i + 1,
			TeamID:       row.TeamID,
			Team:         row.TeamName,
			Played:       row.Played,
			Won:          row.Won,
			Drawn:        row.Drawn,
			Lost:         row.Lost,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
			GoalDiff:     row.GoalDifference(),
			Points:       row.Points,
		}
	}
	writeJSON(w, http.StatusOK, rows)
}
