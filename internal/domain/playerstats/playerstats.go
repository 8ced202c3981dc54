// Package playerstats aggregates per-player statistics over the raw event
// logs: goal and card tallies, matches played and top lists.
package playerstats

import (
	"sort"

	"github.com/mkovel/pitchside/internal/domain/model"
)

// Totals is one player's accumulated statistics across matches.
type Totals struct {
	PlayerID int64
	Goals    int // includes penalty goals
	Assists  int
	Yellow   int
	Red      int
	Matches  int // distinct matches the player was named in
	Starts   int // matches started
}

// Aggregate builds per-player totals from a snapshot of events and lineup
// entries. Own goals are tallied nowhere; they count only against the
// team's score.
func Aggregate(events []model.MatchEvent, lineups []model.LineupEntry) map[int64]*Totals {
	totals := make(map[int64]*Totals)
	get := func(id int64) *Totals {
		t, ok := totals[id]
		if !ok {
			t = &Totals{PlayerID: id}
			totals[id] = t
		}
		return t
	}

	for _, e := range events {
		if e.PlayerID == 0 {
			continue
		}
		switch e.Kind {
		case model.KindGoal, model.KindPenaltyGoal:
			get(e.PlayerID).Goals++
		case model.KindAssist:
			get(e.PlayerID).Assists++
		case model.KindYellowCard:
			get(e.PlayerID).Yellow++
		case model.KindRedCard:
			get(e.PlayerID).Red++
		}
	}

	seen := make(map[int64]map[int64]struct{})
	for _, lu := range lineups {
		m, ok := seen[lu.PlayerID]
		if !ok {
			m = make(map[int64]struct{})
			seen[lu.PlayerID] = m
		}
		if _, dup := m[lu.MatchID]; !dup {
			m[lu.MatchID] = struct{}{}
			get(lu.PlayerID).Matches++
		}
		if lu.Starting {
			get(lu.PlayerID).Starts++
		}
	}
	return totals
}

// Metric selects which tally a top list ranks by.
type Metric string

// Rankable metrics.
const (
	MetricGoals   Metric = "goals"
	MetricAssists Metric = "assists"
	MetricYellow  Metric = "yellow"
	MetricRed     Metric = "red"
)

// ParseMetric maps a wire string onto a Metric.
func ParseMetric(s string) (Metric, bool) {
	switch Metric(s) {
	case MetricGoals, MetricAssists, MetricYellow, MetricRed:
		return Metric(s), true
	default:
		return "", false
	}
}

func (m Metric) value(t *Totals) int {
	switch m {
	case MetricGoals:
		return t.Goals
	case MetricAssists:
		return t.Assists
	case MetricYellow:
		return t.Yellow
	case MetricRed:
		return t.Red
	default:
		return 0
	}
}

// Ranked is one row of a top list.
type Ranked struct {
	Player model.Player
	Totals Totals
	Value  int
}

// TopBy ranks players with a non-zero metric value: value descending, then
// fewer matches first, then last and first name. At most limit rows.
func TopBy(metric Metric, players []model.Player, totals map[int64]*Totals, limit int) []Ranked {
	ranked := make([]Ranked, 0, len(players))
	for _, p := range players {
		t := totals[p.ID]
		if t == nil {
			continue
		}
		v := metric.value(t)
		if v <= 0 {
			continue
		}
		ranked = append(ranked, Ranked{Player: p, Totals: *t, Value: v})
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		if a.Totals.Matches != b.Totals.Matches {
			return a.Totals.Matches < b.Totals.Matches
		}
		if a.Player.LastName != b.Player.LastName {
			return a.Player.LastName < b.Player.LastName
		}
		return a.Player.FirstName < b.Player.FirstName
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// MatchBreakdown is one player's statistics within a single match.
type MatchBreakdown struct {
	MatchID  int64
	TeamID   int64
	Goals    int
	Assists  int
	Yellow   int
	Red      int
	Starting bool
}

// PerMatch builds a player's per-match breakdown, ordered by match date.
// Matches where the player produced no event but was in the lineup still
// appear, so starts without involvement are visible.
func PerMatch(playerID int64, matches []model.Match, events []model.MatchEvent, lineups []model.LineupEntry) []MatchBreakdown {
	byMatch := make(map[int64]*MatchBreakdown)
	get := func(matchID, teamID int64) *MatchBreakdown {
		b, ok := byMatch[matchID]
		if !ok {
			b = &MatchBreakdown{MatchID: matchID, TeamID: teamID}
			byMatch[matchID] = b
		}
		return b
	}

	for _, e := range events {
		if e.PlayerID != playerID {
			continue
		}
		b := get(e.MatchID, e.TeamID)
		switch e.Kind {
		case model.KindGoal, model.KindPenaltyGoal:
			b.Goals++
		case model.KindAssist:
			b.Assists++
		case model.KindYellowCard:
			b.Yellow++
		case model.KindRedCard:
			b.Red++
		}
	}
	for _, lu := range lineups {
		if lu.PlayerID != playerID {
			continue
		}
		b := get(lu.MatchID, lu.TeamID)
		if lu.Starting {
			b.Starting = true
		}
	}

	sorted := make([]model.Match, len(matches))
	copy(sorted, matches)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	out := make([]MatchBreakdown, 0, len(byMatch))
	for _, m := range sorted {
		if b, ok := byMatch[m.ID]; ok {
			out = append(out, *b)
		}
	}
	return out
}
