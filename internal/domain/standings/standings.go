// Package standings ranks league teams over all finished matches.
package standings

import (
	"sort"

	"github.com/mkovel/pitchside/internal/domain/model"
	"github.com/mkovel/pitchside/internal/domain/score"
)

// Row is one team's line in the league table.
type Row struct {
	TeamID       int64
	TeamName     string
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	Points       int
}

// GoalDifference returns goals for minus goals against.
func (r Row) GoalDifference() int {
	return r.GoalsFor - r.GoalsAgainst
}

// Points awarded per result.
const (
	winPoints  = 3
	drawPoints = 1
)

// Compute builds the ranked table from a snapshot of all teams, all matches
// and each match's event set. Only finished matches count; teams without a
// finished match still appear as all-zero rows.
//
// Ranking is points, then goal difference, then goals for, all descending.
// Beyond that the table is ordered by team name and finally team id, so
// equal-on-all-three teams rank deterministically rather than by iteration
// order.
func Compute(teams []model.Team, matches []model.Match, eventsByMatch map[int64][]model.MatchEvent) []Row {
	rows := make(map[int64]*Row, len(teams))
	for _, t := range teams {
		rows[t.ID] = &Row{TeamID: t.ID, TeamName: t.Name}
	}

	for _, m := range matches {
		if m.Status != model.StatusFinished {
			continue
		}
		home, away := rows[m.HomeTeamID], rows[m.AwayTeamID]
		if home == nil || away == nil {
			// Match references a team outside the snapshot; skip it.
			continue
		}

		res := score.Compute(m.HomeTeamID, m.AwayTeamID, eventsByMatch[m.ID])

		home.Played++
		away.Played++
		home.GoalsFor += res.Home
		home.GoalsAgainst += res.Away
		away.GoalsFor += res.Away
		away.GoalsAgainst += res.Home

		switch {
		case res.Home > res.Away:
			home.Won++
			home.Points += winPoints
			away.Lost++
		case res.Home < res.Away:
			away.Won++
			away.Points += winPoints
			home.Lost++
		default:
			home.Drawn++
			away.Drawn++
			home.Points += drawPoints
			away.Points += drawPoints
		}
	}

	table := make([]Row, 0, len(rows))
	for _, r := range rows {
		table = append(table, *r)
	}
	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		if a.TeamName != b.TeamName {
			return a.TeamName < b.TeamName
		}
		return a.TeamID < b.TeamID
	})
	return table
}
