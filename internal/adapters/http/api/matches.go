package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mkovel/pitchside/internal/app"
	"github.com/mkovel/pitchside/internal/domain/timeline"
)

// MatchDependencies defines the interface for match read operations.
type MatchDependencies interface {
	MatchSummaries(ctx context.Context) ([]app.MatchSummary, error)
	MatchDetail(ctx context.Context, matchID int64) (*app.MatchDetail, error)
}

// MatchesHandler handles match listing and detail requests.
type MatchesHandler struct {
	deps MatchDependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchDependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

type matchSummary struct {
	ID        int64  `json:"id"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	HomeGoals *int   `json:"home_goals"`
	AwayGoals *int   `json:"away_goals"`
}

type timelineEntry struct {
	Kind     string `json:"kind"`
	Minute   int    `json:"minute"`
	Stoppage int    `json:"stoppage,omitempty"`
	PlayerID int64  `json:"player_id,omitempty"`
	AssistID int64  `json:"assist_id,omitempty"`
	Penalty  bool   `json:"penalty,omitempty"`
	Red      bool   `json:"red,omitempty"`
	OutID    int64  `json:"out_id,omitempty"`
	InID     int64  `json:"in_id,omitempty"`
}

type squadRow struct {
	PlayerID int64  `json:"player_id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Number   int    `json:"number,omitempty"`
	Goals    int    `json:"goals"`
	Assists  int    `json:"assists"`
	Yellow   int    `json:"yellow"`
	Red      int    `json:"red"`
	CameOff  bool   `json:"came_off,omitempty"`
	CameOn   bool   `json:"came_on,omitempty"`
}

type teamSheet struct {
	TeamID   int64           `json:"team_id"`
	Team     string          `json:"team"`
	Timeline []timelineEntry `json:"timeline"`
	Starters []squadRow      `json:"starters"`
	Bench    []squadRow      `json:"bench"`
}

type matchDetail struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	HomeGoals int       `json:"home_goals"`
	AwayGoals int       `json:"away_goals"`
	Home      teamSheet `json:"home"`
	Away      teamSheet `json:"away"`
}

// HandleListMatches handles GET /matches requests.
func (h *MatchesHandler) HandleListMatches(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_matches"
	summaries, err := h.deps.MatchSummaries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	out := make([]matchSummary, len(summaries))
	for i, sm := range summaries {
		out[i] = matchSummary{
			ID:       sm.Match.ID,
			HomeTeam: sm.HomeTeam.Name,
			AwayTeam: sm.AwayTeam.Name,
			Date:     sm.Match.Date.Format(time.RFC3339),
			Status:   string(sm.Match.Status),
		}
		if sm.Score != nil {
			home, away := sm.Score.Home, sm.Score.Away
			out[i].HomeGoals, out[i].AwayGoals = &home, &away
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGetMatch handles GET /matches/{id} requests.
func (h *MatchesHandler) HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_match"
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	detail, err := h.deps.MatchDetail(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, matchDetail{
		ID:        detail.Match.ID,
		Date:      detail.Match.Date.Format(time.RFC3339),
		Status:    string(detail.Match.Status),
		HomeGoals: detail.Score.Home,
		AwayGoals: detail.Score.Away,
		Home:      toTeamSheet(detail.Home),
		Away:      toTeamSheet(detail.Away),
	})
}

func toTeamSheet(sheet app.TeamSheet) teamSheet {
	out := teamSheet{
		TeamID:   sheet.Team.ID,
		Team:     sheet.Team.Name,
		Timeline: make([]timelineEntry, 0, len(sheet.Timeline.Entries)),
		Starters: toSquadRows(sheet.Starters),
		Bench:    toSquadRows(sheet.Bench),
	}
	for _, e := range sheet.Timeline.Entries {
		out.Timeline = append(out.Timeline, toTimelineEntry(e))
	}
	return out
}

func toTimelineEntry(e timeline.Entry) timelineEntry {
	at := e.At()
	out := timelineEntry{Minute: at.Minute, Stoppage: at.Stoppage}
	switch entry := e.(type) {
	case timeline.GoalEntry:
		out.Kind = "goal"
		out.PlayerID = entry.ScorerID
		out.AssistID = entry.AssistID
		out.Penalty = entry.Penalty
	case timeline.OwnGoalEntry:
		out.Kind = "own_goal"
		out.PlayerID = entry.PlayerID
	case timeline.CardEntry:
		out.Kind = "card"
		out.PlayerID = entry.PlayerID
		out.Red = entry.Red
	case timeline.SubstitutionEntry:
		out.Kind = "substitution"
		out.OutID = entry.OutID
		out.InID = entry.InID
	case timeline.AssistEntry:
		out.Kind = "assist"
		out.PlayerID = entry.PlayerID
	}
	return out
}

func toSquadRows(rows []app.SquadRow) []squadRow {
	out := make([]squadRow, len(rows))
	for i, row := range rows {
		out[i] = squadRow{
			PlayerID: row.Player.ID,
			Name:     row.Player.LastName + " " + row.Player.FirstName,
			Position: string(row.Player.Position),
			Number:   row.Number,
			Goals:    row.Goals,
			Assists:  row.Assists,
			Yellow:   row.Yellow,
			Red:      row.Red,
			CameOff:  row.CameOff,
			CameOn:   row.CameOn,
		}
	}
	return out
}
