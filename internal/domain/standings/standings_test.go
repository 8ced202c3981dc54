package standings_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/mkovel/pitchside/internal/domain/model"
	"github.com/mkovel/pitchside/internal/domain/standings"
)

func team(id int64, name string) model.Team { return model.Team{ID: id, Name: name} }

func match(id, home, away int64, status model.MatchStatus) model.Match {
	return model.Match{ID: id, HomeTeamID: home, AwayTeamID: away, Status: status}
}

func goals(matchID, teamID int64, n int) []model.MatchEvent {
	out := make([]model.MatchEvent, n)
	for i := range out {
		out[i] = model.MatchEvent{MatchID: matchID, TeamID: teamID, Kind: model.KindGoal, Minute: 10 + i}
	}
	return out
}

func TestCompute(t *testing.T) {
	Convey("Given a league of teams and matches", t, func() {
		teams := []model.Team{team(1, "Harbor"), team(2, "Summit"), team(3, "Meadow")}

		Convey("When no match has finished", func() {
			matches := []model.Match{
				match(100, 1, 2, model.StatusScheduled),
				match(101, 2, 3, model.StatusLive),
			}
			table := standings.Compute(teams, matches, map[int64][]model.MatchEvent{
				101: goals(101, 2, 3),
			})

			Convey("Then every team has an all-zero row", func() {
				So(len(table), ShouldEqual, 3)
				for _, row := range table {
					So(row.Played, ShouldEqual, 0)
					So(row.Points, ShouldEqual, 0)
				}
			})

			Convey("Then the zero rows are ordered by team name", func() {
				So(table[0].TeamName, ShouldEqual, "Harbor")
				So(table[1].TeamName, ShouldEqual, "Meadow")
				So(table[2].TeamName, ShouldEqual, "Summit")
			})
		})

		Convey("When finished matches produce wins and draws", func() {
			matches := []model.Match{
				match(100, 1, 2, model.StatusFinished), // Harbor 2:0 Summit
				match(101, 2, 3, model.StatusFinished), // Summit 1:1 Meadow
				match(102, 3, 1, model.StatusFinished), // Meadow 0:1 Harbor
			}
			events := map[int64][]model.MatchEvent{
				100: goals(100, 1, 2),
				101: append(goals(101, 2, 1), goals(101, 3, 1)...),
				102: goals(102, 1, 1),
			}
			table := standings.Compute(teams, matches, events)

			Convey("Then points follow the 3-1-0 rule", func() {
				So(table[0].TeamName, ShouldEqual, "Harbor")
				So(table[0].Points, ShouldEqual, 6)
				So(table[0].Won, ShouldEqual, 2)
				So(table[1].TeamName, ShouldEqual, "Summit")
				So(table[1].Points, ShouldEqual, 1)
				So(table[2].TeamName, ShouldEqual, "Meadow")
				So(table[2].Points, ShouldEqual, 1)
			})

			Convey("Then goal tallies and difference are tracked", func() {
				So(table[0].GoalsFor, ShouldEqual, 3)
				So(table[0].GoalsAgainst, ShouldEqual, 0)
				So(table[0].GoalDifference(), ShouldEqual, 3)
			})
		})

		Convey("When an own goal decides a finished match", func() {
			matches := []model.Match{match(100, 1, 2, model.StatusFinished)}
			events := map[int64][]model.MatchEvent{
				100: {{MatchID: 100, TeamID: 1, Kind: model.KindOwnGoal, Minute: 80}},
			}
			table := standings.Compute(teams, matches, events)

			Convey("Then the opponent takes the win", func() {
				So(table[0].TeamName, ShouldEqual, "Summit")
				So(table[0].Points, ShouldEqual, 3)
				So(table[0].GoalsFor, ShouldEqual, 1)
			})
		})

		Convey("When two teams tie on points", func() {
			// Summit and Meadow both win once, Summit by the wider margin.
			matches := []model.Match{
				match(100, 2, 1, model.StatusFinished), // Summit 3:0 Harbor
				match(101, 3, 1, model.StatusFinished), // Meadow 1:0 Harbor
			}
			events := map[int64][]model.MatchEvent{
				100: goals(100, 2, 3),
				101: goals(101, 3, 1),
			}
			table := standings.Compute(teams, matches, events)

			Convey("Then goal difference breaks the tie", func() {
				So(table[0].TeamName, ShouldEqual, "Summit")
				So(table[1].TeamName, ShouldEqual, "Meadow")
			})
		})

		Convey("When teams tie on points, difference and goals for", func() {
			matches := []model.Match{
				match(100, 2, 1, model.StatusFinished), // Summit 1:0 Harbor
				match(101, 3, 1, model.StatusFinished), // Meadow 1:0 Harbor
			}
			events := map[int64][]model.MatchEvent{
				100: goals(100, 2, 1),
				101: goals(101, 3, 1),
			}
			table := standings.Compute(teams, matches, events)

			Convey("Then team name orders them deterministically", func() {
				So(table[0].TeamName, ShouldEqual, "Meadow")
				So(table[1].TeamName, ShouldEqual, "Summit")
			})
		})

		Convey("When a match references a team outside the snapshot", func() {
			matches := []model.Match{match(100, 1, 99, model.StatusFinished)}
			table := standings.Compute(teams, matches, map[int64][]model.MatchEvent{
				100: goals(100, 1, 2),
			})

			Convey("Then the match is skipped", func() {
				for _, row := range table {
					So(row.Played, ShouldEqual, 0)
				}
			})
		})
	})
}
