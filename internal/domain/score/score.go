// Package score computes a match score from its raw event log.
package score

import "github.com/mkovel/pitchside/internal/domain/model"

// Result is the goal tally for both sides of one match.
type Result struct {
	Home int
	Away int
}

// Compute tallies goals for each side from the match's full event set.
// A side's count is its own goal and penalty-goal rows plus own-goal rows
// attributed to the opposing team. Pure function; callers batch-load events
// once per match.
func Compute(homeTeamID, awayTeamID int64, events []model.MatchEvent) Result {
	var r Result
	for _, e := range events {
		switch {
		case e.Kind.Scoring():
			switch e.TeamID {
			case homeTeamID:
				r.Home++
			case awayTeamID:
				r.Away++
			}
		case e.Kind == model.KindOwnGoal:
			// Recorded against the scorer's team, credited to the opponent.
			switch e.TeamID {
			case homeTeamID:
				r.Away++
			case awayTeamID:
				r.Home++
			}
		}
	}
	return r
}
