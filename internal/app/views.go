package app

import (
	"context"
	"sort"

	"github.com/mkovel/pitchside/internal/domain/model"
	"github.com/mkovel/pitchside/internal/domain/playerstats"
	"github.com/mkovel/pitchside/internal/domain/score"
	"github.com/mkovel/pitchside/internal/domain/timeline"
	"github.com/mkovel/pitchside/pkg/metrics"
)

// MatchSummary is one match with its teams and, for live or finished
// matches, the current score.
type MatchSummary struct {
	Match    model.Match
	HomeTeam model.Team
	AwayTeam model.Team
	Score    *score.Result // nil while the match is only scheduled
}

// SquadRow is one player's line in a match squad list, annotated with
// in-match statistics and substitution status.
type SquadRow struct {
	Player   model.Player
	Number   int
	Goals    int
	Assists  int
	Yellow   int
	Red      int
	Starting bool
	CameOff  bool
	CameOn   bool
}

// TeamSheet is one side's view of a match: composite timeline plus the
// squad split into starters and bench.
type TeamSheet struct {
	Team     model.Team
	Timeline timeline.Timeline
	Starters []SquadRow
	Bench    []SquadRow
}

// MatchDetail is the full reconstructed state of one match.
type MatchDetail struct {
	Match model.Match
	Score score.Result
	Home  TeamSheet
	Away  TeamSheet
}

// PlayerOverview is one player's career line: current team, totals and the
// per-match breakdown.
type PlayerOverview struct {
	Player   model.Player
	Team     *model.Team // nil when not on any roster
	Number   int
	Totals   playerstats.Totals
	PerMatch []playerstats.MatchBreakdown
}

// MatchSummaries lists all matches, newest first, with scores where the
// match has started.
func (s *Service) MatchSummaries(ctx context.Context) ([]MatchSummary, error) {
	matches := s.store.Matches(ctx)
	sort.Slice(matches, func(i, j int) bool { return matches[j].Date.Before(matches[i].Date) })

	eventsByMatch := s.store.EventsByMatch(ctx)
	out := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		home, err := s.store.Team(ctx, m.HomeTeamID)
		if err != nil {
			return nil, err
		}
		away, err := s.store.Team(ctx, m.AwayTeamID)
		if err != nil {
			return nil, err
		}
		sm := MatchSummary{Match: m, HomeTeam: home, AwayTeam: away}
		if m.Status != model.StatusScheduled {
			res := score.Compute(m.HomeTeamID, m.AwayTeamID, eventsByMatch[m.ID])
			sm.Score = &res
		}
		out = append(out, sm)
	}
	return out, nil
}

// MatchDetail reconstructs one match: the score, both teams' composite
// timelines and their annotated squad lists.
func (s *Service) MatchDetail(ctx context.Context, matchID int64) (*MatchDetail, error) {
	m, err := s.store.Match(ctx, matchID)
	if err != nil {
		return nil, err
	}
	events := s.store.Events(ctx, matchID)
	lineups := s.store.Lineup(ctx, matchID)

	detail := &MatchDetail{
		Match: m,
		Score: score.Compute(m.HomeTeamID, m.AwayTeamID, events),
	}

	detail.Home, err = s.buildTeamSheet(ctx, m.HomeTeamID, events, lineups)
	if err != nil {
		return nil, err
	}
	detail.Away, err = s.buildTeamSheet(ctx, m.AwayTeamID, events, lineups)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *Service) buildTeamSheet(ctx context.Context, teamID int64, events []model.MatchEvent, lineups []model.LineupEntry) (TeamSheet, error) {
	team, err := s.store.Team(ctx, teamID)
	if err != nil {
		return TeamSheet{}, err
	}

	lineup := teamLineup(lineups, teamID)
	rows := teamEvents(events, teamID)

	tl := timeline.Build(lineup, rows)
	metrics.RecordTimelineBuild()

	numbers := make(map[int64]int)
	for _, r := range s.store.RosterOf(ctx, teamID) {
		numbers[r.PlayerID] = r.Number
	}

	// In-match tallies per player, goal and penalty rows counted together.
	type tally struct{ goals, assists, yellow, red int }
	tallies := make(map[int64]*tally)
	for _, e := range rows {
		if e.PlayerID == 0 {
			continue
		}
		t, ok := tallies[e.PlayerID]
		if !ok {
			t = &tally{}
			tallies[e.PlayerID] = t
		}
		switch e.Kind {
		case model.KindGoal, model.KindPenaltyGoal:
			t.goals++
		case model.KindAssist:
			t.assists++
		case model.KindYellowCard:
			t.yellow++
		case model.KindRedCard:
			t.red++
		}
	}

	squad := make([]SquadRow, 0, len(lineup))
	for _, lu := range lineup {
		p, err := s.store.Player(ctx, lu.PlayerID)
		if err != nil {
			return TeamSheet{}, err
		}
		row := SquadRow{
			Player:   p,
			Number:   numbers[p.ID],
			Starting: lu.Starting,
			CameOff:  tl.SubbedOut.Contains(p.ID),
			CameOn:   tl.SubbedIn.Contains(p.ID),
		}
		if t := tallies[p.ID]; t != nil {
			row.Goals, row.Assists, row.Yellow, row.Red = t.goals, t.assists, t.yellow, t.red
		}
		squad = append(squad, row)
	}
	sort.Slice(squad, func(i, j int) bool {
		a, b := squad[i].Player, squad[j].Player
		if a.Position.Rank() != b.Position.Rank() {
			return a.Position.Rank() < b.Position.Rank()
		}
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		return a.FirstName < b.FirstName
	})

	sheet := TeamSheet{Team: team, Timeline: tl}
	for _, row := range squad {
		if row.Starting {
			sheet.Starters = append(sheet.Starters, row)
		} else {
			sheet.Bench = append(sheet.Bench, row)
		}
	}
	return sheet, nil
}

// PlayerOverview aggregates one player's totals and per-match breakdown.
func (s *Service) PlayerOverview(ctx context.Context, playerID int64) (*PlayerOverview, error) {
	p, err := s.store.Player(ctx, playerID)
	if err != nil {
		return nil, err
	}

	events := s.store.AllEvents(ctx)
	lineups := s.store.Lineups(ctx)
	totals := playerstats.Aggregate(events, lineups)

	view := &PlayerOverview{
		Player:   p,
		PerMatch: playerstats.PerMatch(playerID, s.store.Matches(ctx), events, lineups),
	}
	if t := totals[playerID]; t != nil {
		view.Totals = *t
	} else {
		view.Totals = playerstats.Totals{PlayerID: playerID}
	}

	for _, r := range s.store.Rosters(ctx) {
		if r.PlayerID != playerID {
			continue
		}
		team, err := s.store.Team(ctx, r.TeamID)
		if err != nil {
			return nil, err
		}
		view.Team = &team
		view.Number = r.Number
		break
	}
	return view, nil
}
